package assign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"stockhub/internal/api"
	"stockhub/internal/domain"
	"stockhub/internal/eventbus"
)

// Creator persists assignments on the backend
type Creator interface {
	CreateAssignment(ctx context.Context, a domain.Assignment) (domain.Assignment, error)
}

// AssignmentService submits assignments requested by the form
type AssignmentService interface {
	Submit(ctx context.Context, a domain.Assignment) (domain.Assignment, error)
	Wait()
}

// assignmentService is the concrete implementation
type assignmentService struct {
	bus     eventbus.EventBus
	creator Creator
	timeout time.Duration
	wg      sync.WaitGroup
	// offline assignments get local ids
	nextID atomic.Int64
}

// NewAssignmentService creates the submitter. A nil creator means offline:
// assignments are accepted locally with generated ids.
func NewAssignmentService(bus eventbus.EventBus, creator Creator, timeout time.Duration) AssignmentService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	as := &assignmentService{
		bus:     bus,
		creator: creator,
		timeout: timeout,
	}
	as.nextID.Store(1000)

	bus.Subscribe(eventbus.EventAssignmentRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AssignmentRequestedEvent); ok {
			as.wg.Add(1)
			go func() {
				defer as.wg.Done()
				ctx, cancel := context.WithTimeout(context.Background(), as.timeout)
				defer cancel()
				_, _ = as.Submit(ctx, event.Assignment)
			}()
		}
	})

	return as
}

// Submit creates the assignment and publishes AssignmentCreated or Error
func (as *assignmentService) Submit(ctx context.Context, a domain.Assignment) (domain.Assignment, error) {
	if err := validate(a); err != nil {
		as.bus.Publish(eventbus.ErrorEvent{Message: "Assignment is incomplete", Err: err})
		return domain.Assignment{}, err
	}

	if as.creator == nil {
		a.ID = int(as.nextID.Add(1))
		log.Info("assignment accepted offline", "id", a.ID, "employee", a.EmployeeID, "branch", a.BranchID)
		as.bus.Publish(eventbus.AssignmentCreatedEvent{Assignment: a})
		return a, nil
	}

	created, err := as.creator.CreateAssignment(ctx, a)
	if err != nil {
		log.Error("failed to create assignment", "employee", a.EmployeeID, "branch", a.BranchID, "err", err)
		msg := "Failed to create assignment"
		if errors.Is(err, api.ErrUnauthorized) {
			msg = "Not authorized to create assignments"
		}
		as.bus.Publish(eventbus.ErrorEvent{Message: msg, Err: err})
		return domain.Assignment{}, err
	}

	log.Info("assignment created", "id", created.ID, "employee", created.EmployeeID, "branch", created.BranchID)
	as.bus.Publish(eventbus.AssignmentCreatedEvent{Assignment: created})
	return created, nil
}

// Wait blocks until background submissions have finished
func (as *assignmentService) Wait() {
	as.wg.Wait()
}

func validate(a domain.Assignment) error {
	if a.EmployeeID <= 0 {
		return fmt.Errorf("employee is required")
	}
	if a.BranchID <= 0 {
		return fmt.Errorf("branch is required")
	}
	for _, s := range domain.AssignmentStatuses {
		if a.Status == s {
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", a.Status)
}
