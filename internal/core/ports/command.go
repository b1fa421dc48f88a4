package ports

import (
	"context"

	"go.trai.ch/lingo/internal/core/domain"
)

// CommandRunner runs external tools such as cmake.
//
//go:generate mockgen -source=command.go -destination=mocks/mock_command.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and waits for it. A non-zero exit is reported as
	// domain.ErrCommandFailed.
	Run(ctx context.Context, cmd domain.Command) error
}
