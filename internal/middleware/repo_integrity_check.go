package middleware

import (
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/repo"
)

// WithRepoIntegrityCheck refuses to run a command when the references or
// the commits they reach are damaged.
func WithRepoIntegrityCheck() command.Middleware {
	return command.Before(func(command.Command, *command.Context) error {
		r, err := repo.Open()
		if err != nil {
			return err
		}
		if err := r.Verify(); err != nil {
			return fmt.Errorf("repository verification failed: %w\nPlease run `wit verify` for details", err)
		}
		return nil
	})
}
