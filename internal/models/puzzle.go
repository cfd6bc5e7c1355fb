package models

import "time"

// Puzzle 퍼즐 정의 - 내용 생성은 GeneratorType/GeneratorParams가 결정
type Puzzle struct {
	ID              int            `json:"id" db:"id"`
	Day             int            `json:"day" db:"day"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	Story           *string        `json:"story,omitempty" db:"story"`
	SampleInput     *string        `json:"sampleInput,omitempty" db:"sample_input"`
	SampleOutput    *string        `json:"sampleOutput,omitempty" db:"sample_output"`
	Difficulty      string         `json:"difficulty" db:"difficulty"`
	GeneratorType   string         `json:"-" db:"generator_type"`
	GeneratorParams map[string]int `json:"-" db:"generator_params"`
	// CaseSensitive true면 답안 비교 시 대소문자를 구분 (기본은 구분 안 함)
	CaseSensitive bool      `json:"-" db:"case_sensitive"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
