package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncements(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)

	first, err := svc.Create("Welcome", "The game is on.", "staff-1")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	time.Sleep(5 * time.Millisecond)
	second, err := svc.Create("Hint drop", "Check puzzle 3.", "staff-1")
	require.NoError(t, err)

	anns, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, anns, 2)

	assert.Equal(t, second.ID, anns[0].ID, "newest first")
	assert.Equal(t, first.ID, anns[1].ID)
	assert.Equal(t, "staff-1", anns[0].Author)
}
