package feed

import (
	"errors"
	"fmt"

	"feedsync/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrBlankCredentials = errors.New("username and password are required")
	ErrBlankContent     = errors.New("content is required")
	ErrNotSignedIn      = errors.New("no user is signed in")
	ErrNotOwner         = errors.New("post belongs to another user")

	localErrors = []error{ErrBlankCredentials, ErrBlankContent, ErrNotSignedIn, ErrNotOwner}
)

var (
	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedsync_operations_total",
		Help: "The total number of feed operations by outcome",
	}, []string{"operation", "outcome"})

	postCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feedsync_posts",
		Help: "The number of posts in the last loaded feed",
	})
)

// RejectedError is a failure reported by the service itself.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "rejected by service"
	}
	return "rejected by service: " + e.Message
}

type outcome string

const (
	outcomeApplied           outcome = "applied"
	outcomeRejectedLocally   outcome = "rejected_locally"
	outcomeRejectedByService outcome = "rejected_by_service"
	outcomeTransportFailed   outcome = "transport_failed"

	// outcomeNoPosts is a feed response without a post collection. The feed
	// is left as it was.
	outcomeNoPosts outcome = "no_posts"
)

func classify(err error) outcome {
	if err == nil {
		return outcomeApplied
	}

	for _, local := range localErrors {
		if errors.Is(err, local) {
			return outcomeRejectedLocally
		}
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return outcomeRejectedByService
	}

	if errors.Is(err, core.ErrMalformedFeed) {
		return outcomeNoPosts
	}

	return outcomeTransportFailed
}

// check folds a service answer into a single error.
func check(ack core.Ack, err error) error {
	if err != nil {
		return err
	}
	if !ack.Success {
		return &RejectedError{Message: ack.Message}
	}
	return nil
}

// failureBody is the notification text for err: the service's own message when
// it sent one, otherwise reason, with the transport error appended.
func failureBody(err error, reason string) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		if rejected.Message != "" {
			return rejected.Message
		}
		return reason
	}
	return fmt.Sprintf("%s: %s", reason, err)
}

// settle records the outcome of operation and reports whether it succeeded.
func (s *Syncer) settle(operation string, err error) bool {
	out := classify(err)
	operations.WithLabelValues(operation, string(out)).Inc()

	if err != nil {
		s.logger.Info("operation failed", "operation", operation, "outcome", out, "error", err)
		return false
	}

	s.logger.Debug("operation applied", "operation", operation)
	return true
}
