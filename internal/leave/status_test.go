package leave_test

import (
	"testing"
	"time"

	"go-leave/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	approver := uuid.New()
	now := time.Now().UTC()
	reason := "understaffed"

	t.Run("pending by default", func(t *testing.T) {
		r := &leave.LeaveRequest{LeadApprovalRequired: true}
		assert.Equal(t, leave.StatusPending, leave.ComputeStatus(r))
	})

	t.Run("lead approval alone", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: true,
			LeadApprovedBy:       &approver,
		}
		assert.Equal(t, leave.StatusLeadApproved, leave.ComputeStatus(r))
	})

	t.Run("hr approval alone when lead still required", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: true,
			HRApprovedBy:         &approver,
		}
		assert.Equal(t, leave.StatusHRApproved, leave.ComputeStatus(r))
	})

	t.Run("both tracks approved", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: true,
			LeadApprovedBy:       &approver,
			HRApprovedBy:         &approver,
		}
		assert.Equal(t, leave.StatusApproved, leave.ComputeStatus(r))
	})

	t.Run("hr alone suffices without a lead", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: false,
			HRApprovedBy:         &approver,
		}
		assert.Equal(t, leave.StatusApproved, leave.ComputeStatus(r))
	})

	t.Run("rejection wins over approvals", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: true,
			LeadApprovedBy:       &approver,
			HRApprovedBy:         &approver,
			RejectedBy:           &approver,
			RejectionReason:      &reason,
		}
		assert.Equal(t, leave.StatusRejected, leave.ComputeStatus(r))
	})

	t.Run("cancellation wins over pending approvals", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: true,
			LeadApprovedBy:       &approver,
			CancelledAt:          &now,
		}
		assert.Equal(t, leave.StatusCancelled, leave.ComputeStatus(r))
	})

	t.Run("rejection wins over cancellation", func(t *testing.T) {
		r := &leave.LeaveRequest{
			RejectedBy:  &approver,
			CancelledAt: &now,
		}
		assert.Equal(t, leave.StatusRejected, leave.ComputeStatus(r))
	})

	t.Run("pure over the same input", func(t *testing.T) {
		r := &leave.LeaveRequest{
			LeadApprovalRequired: true,
			LeadApprovedBy:       &approver,
		}
		first := leave.ComputeStatus(r)
		second := leave.ComputeStatus(r)
		assert.Equal(t, first, second)
	})
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, leave.IsTerminal(leave.StatusApproved))
	assert.True(t, leave.IsTerminal(leave.StatusRejected))
	assert.True(t, leave.IsTerminal(leave.StatusCancelled))
	assert.False(t, leave.IsTerminal(leave.StatusPending))
	assert.False(t, leave.IsTerminal(leave.StatusLeadApproved))
	assert.False(t, leave.IsTerminal(leave.StatusHRApproved))

	assert.True(t, leave.IsEditable(leave.StatusPending))
	assert.True(t, leave.IsEditable(leave.StatusLeadApproved))
	assert.True(t, leave.IsEditable(leave.StatusHRApproved))
	assert.False(t, leave.IsEditable(leave.StatusApproved))
	assert.False(t, leave.IsEditable(leave.StatusCancelled))

	assert.True(t, leave.IsValidType("ANNUAL"))
	assert.False(t, leave.IsValidType("SABBATICAL"))

	assert.True(t, leave.IsValidStatus(leave.StatusHRApproved))
	assert.False(t, leave.IsValidStatus("UNKNOWN"))
}
