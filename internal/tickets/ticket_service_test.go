package tickets

import (
	"testing"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildChangesStampsResolvedAtOnTransition(t *testing.T) {
	now := time.Now()
	prior := &models.Ticket{ID: 1, Status: models.TicketStatusOpen}

	changes, err := BuildChanges(prior, models.UpdateTicketRequest{
		Status: strPtr(models.TicketStatusResolved),
	}, true, now)

	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, changes["status"])
	assert.Equal(t, now, changes["resolved_at"])
}

func TestBuildChangesDoesNotRestampAlreadyResolvedTicket(t *testing.T) {
	resolvedAt := time.Now().Add(-time.Hour)
	prior := &models.Ticket{ID: 1, Status: models.TicketStatusResolved, ResolvedAt: &resolvedAt}

	// priority change on a resolved ticket, status untouched
	changes, err := BuildChanges(prior, models.UpdateTicketRequest{
		Priority: strPtr(models.TicketPriorityHigh),
	}, true, time.Now())

	require.NoError(t, err)
	assert.NotContains(t, changes, "resolved_at")

	// even an explicit resolved->resolved update is not a transition
	changes, err = BuildChanges(prior, models.UpdateTicketRequest{
		Status: strPtr(models.TicketStatusResolved),
	}, true, time.Now())

	require.NoError(t, err)
	assert.NotContains(t, changes, "resolved_at")
}

func TestBuildChangesRestrictsStatusAndPriorityToAdmins(t *testing.T) {
	prior := &models.Ticket{ID: 1, Status: models.TicketStatusOpen}

	_, err := BuildChanges(prior, models.UpdateTicketRequest{
		Status: strPtr(models.TicketStatusClosed),
	}, false, time.Now())
	assert.ErrorIs(t, err, ErrRestrictedFields)

	_, err = BuildChanges(prior, models.UpdateTicketRequest{
		Priority: strPtr(models.TicketPriorityLow),
	}, false, time.Now())
	assert.ErrorIs(t, err, ErrRestrictedFields)

	// subject/message stay open to the owner
	changes, err := BuildChanges(prior, models.UpdateTicketRequest{
		Subject: strPtr("Shipping delay"),
		Message: strPtr("Container still not loaded"),
	}, false, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Shipping delay", changes["subject"])
}

func TestBuildChangesValidation(t *testing.T) {
	prior := &models.Ticket{ID: 1, Status: models.TicketStatusOpen}

	_, err := BuildChanges(prior, models.UpdateTicketRequest{}, true, time.Now())
	assert.ErrorIs(t, err, ErrNoChanges)

	_, err = BuildChanges(prior, models.UpdateTicketRequest{Status: strPtr("escalated")}, true, time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = BuildChanges(prior, models.UpdateTicketRequest{Priority: strPtr("critical")}, true, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestBuildChangesAlwaysTouchesUpdatedAt(t *testing.T) {
	now := time.Now()
	prior := &models.Ticket{ID: 1, Status: models.TicketStatusOpen}

	changes, err := BuildChanges(prior, models.UpdateTicketRequest{
		Subject: strPtr("New subject"),
	}, true, now)

	require.NoError(t, err)
	assert.Equal(t, now, changes["updated_at"])
}
