package models

import "slices"

// Choices offered by the year and major filters.
var (
	GraduationYears = []string{"2022", "2023", "2024", "2025"}

	Majors = []string{
		"Computer Science",
		"Electrical Engineering",
		"Mechanical Engineering",
		"Civil Engineering",
	}
)

func IsGraduationYear(y string) bool {
	return slices.Contains(GraduationYears, y)
}
