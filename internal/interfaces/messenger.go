package interfaces

import (
	"context"

	"github.com/ternarybob/gleaner/internal/models"
)

// Messenger delivers rendered artifacts and interactive polls to the
// destination channel. One attempt is one network call; retry policy lives
// with the caller-facing task, not here.
type Messenger interface {
	SendDocument(ctx context.Context, task *models.DeliveryTask) error
	SendPoll(ctx context.Context, poll *models.Poll) error
}
