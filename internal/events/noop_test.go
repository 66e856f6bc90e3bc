package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/gophboard-server/internal/model"
	"github.com/dtroode/gophboard-server/internal/testutil"
)

func TestNoop_PublishPostCreated(t *testing.T) {
	n := NewNoop(testutil.MakeNoopLogger())

	err := n.PublishPostCreated(context.Background(), model.PostCreatedEvent{
		PostID:    1,
		OwnerID:   2,
		Title:     "hello",
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
}
