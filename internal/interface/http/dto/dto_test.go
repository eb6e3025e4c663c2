package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
)

func TestJobRequest_SkillsFormats(t *testing.T) {
	var fromArray JobRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","description":"d","budget":10,"skills":["Go","SQL"]}`), &fromArray))
	assert.Equal(t, []string{"Go", "SQL"}, fromArray.ToInput().Skills)

	var fromString JobRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","description":"d","budget":10,"skills":"Go, SQL"}`), &fromString))
	assert.Equal(t, []string{"Go", " SQL"}, fromString.ToInput().Skills)

	var bad JobRequest
	assert.Error(t, json.Unmarshal([]byte(`{"skills":42}`), &bad))
}

func TestToJobResponse_EmptySkillsIsArray(t *testing.T) {
	resp := ToJobResponse(&entity.Job{ID: uuid.New(), Budget: valueobject.MoneyFromDB(5)})
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"skills":[]`)
}

func TestToOrderViewResponses(t *testing.T) {
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New(),
		JobID:     uuid.New(),
		Amount:    valueobject.MoneyFromDB(120.5),
		Status:    valueobject.OrderStatusDelivered,
		CreatedAt: now,
	}
	out := ToOrderViewResponses([]*repository.OrderView{{Order: order, JobTitle: "Лендинг"}})
	require.Len(t, out, 1)
	assert.Equal(t, "Лендинг", out[0].JobTitle)
	assert.Equal(t, "delivered", out[0].Status)
	assert.Equal(t, 120.5, out[0].Amount)
}

func TestEventPayload(t *testing.T) {
	msg := &entity.Message{ID: uuid.New(), Body: "привет"}
	payload, ok := EventPayload(msg).(MessageResponse)
	require.True(t, ok)
	assert.Equal(t, "привет", payload.Body)

	dispute := &entity.Dispute{ID: uuid.New(), Status: valueobject.DisputeStatusOpen}
	_, ok = EventPayload(dispute).(DisputeResponse)
	assert.True(t, ok)

	other := map[string]any{"proposal_id": "x"}
	assert.Equal(t, other, EventPayload(other))
}
