// Package domain defines core business entities and value objects for termgenie.
//
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// RiskLevel enumerates classification outcomes for a generated command.
type RiskLevel string

const (
	RiskSafe      RiskLevel = "safe"
	RiskWarning   RiskLevel = "warning"
	RiskDangerous RiskLevel = "dangerous"
)

// MoreSevere reports whether l outranks other.
func (l RiskLevel) MoreSevere(other RiskLevel) bool {
	return riskRank(l) > riskRank(other)
}

func riskRank(l RiskLevel) int {
	switch l {
	case RiskWarning:
		return 1
	case RiskDangerous:
		return 2
	default:
		return 0
	}
}

// RiskResult aggregates the verdict of a classification pass. Reasons is
// empty exactly when Level is RiskSafe.
type RiskResult struct {
	Level   RiskLevel
	Reasons []string
}

// GeneratedCommand is the immutable result of a command generation call.
// RiskLevel and RiskReasons are always derived by the classifier, never
// supplied by the backend.
type GeneratedCommand struct {
	ID          string
	Command     string
	Explanation string
	RiskLevel   RiskLevel
	RiskReasons []string
	Model       string
	CreatedAt   time.Time
}

// NewGeneratedCommand stamps identity and creation time onto a result.
func NewGeneratedCommand(command, explanation, model string, risk RiskResult) GeneratedCommand {
	return GeneratedCommand{
		ID:          uuid.NewString(),
		Command:     command,
		Explanation: explanation,
		RiskLevel:   risk.Level,
		RiskReasons: risk.Reasons,
		Model:       model,
		CreatedAt:   time.Now(),
	}
}

// GenerateRequest captures the user intent and terminal context for one
// generation call. WorkingDir and Shell come from the host terminal session.
type GenerateRequest struct {
	Instruction        string
	WorkingDir         string
	Shell              string
	CustomInstructions string
}

// MaxInstructionLength bounds the instruction accepted from the caller.
const MaxInstructionLength = 500

// Validate rejects empty or oversized instructions before anything is sent
// to the backend.
func (r GenerateRequest) Validate() error {
	trimmed := strings.TrimSpace(r.Instruction)
	if trimmed == "" {
		return NewValidationError("instruction is empty")
	}
	if utf8.RuneCountInString(r.Instruction) > MaxInstructionLength {
		return NewValidationError(fmt.Sprintf("instruction exceeds %d characters", MaxInstructionLength))
	}
	return nil
}

// NormalizedShell returns the bare shell name ("/bin/zsh" -> "zsh"),
// defaulting to bash when the session did not report one.
func (r GenerateRequest) NormalizedShell() string {
	shell := strings.TrimSpace(r.Shell)
	if shell == "" {
		return "bash"
	}
	if idx := strings.LastIndex(shell, "/"); idx >= 0 {
		shell = shell[idx+1:]
	}
	return shell
}
