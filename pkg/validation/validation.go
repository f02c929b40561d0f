package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

const MaxGameScore = 10000

var directions = map[string]bool{
	"developer": true,
	"designer":  true,
}

var gameTypes = map[string]bool{
	"bug_catcher": true,
	"color_match": true,
}

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func ValidateDirection(direction string) error {
	if !directions[direction] {
		return fmt.Errorf("invalid direction: %s (must be one of: developer, designer)", direction)
	}
	return nil
}

func ValidateGameType(gameType string) error {
	if !gameTypes[gameType] {
		return fmt.Errorf("invalid game type: %s (must be one of: bug_catcher, color_match)", gameType)
	}
	return nil
}

func ValidateGameScore(score int) error {
	if score < 0 || score > MaxGameScore {
		return fmt.Errorf("game score must be between 0 and %d, got %d", MaxGameScore, score)
	}
	return nil
}

func ValidatePrizeID(id int) error {
	if id <= 0 {
		return fmt.Errorf("prize ID must be a positive integer, got %d", id)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateResumeFile checks the file extension against the set the backend accepts.
func ValidateResumeFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !resumeExtensions[ext] {
		return fmt.Errorf("invalid resume file type: %s (allowed: .pdf, .doc, .docx)", ext)
	}
	return nil
}
