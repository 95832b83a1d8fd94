// Package workflow derives higher-level status from the stage each order
// line item occupies: per-item stage history bookkeeping and the order-level
// aggregate status. Everything here is pure; persistence stays in the store.
package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
)

// Terminal and not-yet-started keywords. Matched case-insensitively as
// substrings, so a stage literally named "Hand Finished" counts as finished
// whether or not the workflow also declares it as a stage id.
var (
	finishedKeywords   = []string{"done", "finished", "complete", "delivered", "cancelled"}
	notStartedKeywords = []string{"queue", "pending"}
)

func matchAny(status string, keywords []string) bool {
	s := strings.ToLower(status)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// IsFinished reports whether an item status counts as terminal.
func IsFinished(status string) bool { return matchAny(status, finishedKeywords) }

// IsNotStarted reports whether an item status still counts as waiting.
func IsNotStarted(status string) bool { return matchAny(status, notStartedKeywords) }

// Advance closes the item's open history entry, opens one for newStage and
// optionally appends a technical-log entry tagged with the new stage. The
// stage display name is looked up in def when available. Returns the mutated
// copy; the caller decides what to do with it.
func Advance(item model.OrderItem, def *model.WorkflowDefinition, newStage, performedBy, note string, now time.Time) model.OrderItem {
	history := make([]model.StageHistoryEntry, len(item.History), len(item.History)+1)
	copy(history, item.History)
	for i := range history {
		if history[i].LeftAt == nil {
			left := now
			history[i].LeftAt = &left
			history[i].Duration = now.Sub(history[i].EnteredAt)
		}
	}
	item.History = append(history, model.StageHistoryEntry{
		StageID:     newStage,
		StageName:   stageName(def, newStage),
		EnteredAt:   now,
		PerformedBy: performedBy,
	})
	if note != "" {
		tlog := make([]model.TechnicalLogEntry, len(item.TechnicalLog), len(item.TechnicalLog)+1)
		copy(tlog, item.TechnicalLog)
		item.TechnicalLog = append(tlog, model.TechnicalLogEntry{
			ID:        uuid.NewString(),
			Content:   note,
			Author:    performedBy,
			Timestamp: now,
			Stage:     newStage,
		})
	}
	item.Status = newStage
	return item
}

func stageName(def *model.WorkflowDefinition, stageID string) string {
	if def != nil {
		for _, st := range def.Stages {
			if st.ID == stageID {
				return st.Name
			}
		}
	}
	return stageID
}

// DeriveOrderStatus computes the order's aggregate status from its
// non-product items. Precedence: terminal check first, then started check,
// else unchanged. Confirmed/Delivered/Cancelled are never produced here; they
// are set only by direct user action. Idempotent for an unchanged item set.
func DeriveOrderStatus(current model.OrderStatus, items []model.OrderItem) model.OrderStatus {
	tracked := 0
	finished := 0
	started := 0
	for _, it := range items {
		if it.IsProduct {
			continue
		}
		tracked++
		if IsFinished(it.Status) {
			finished++
		}
		if !IsNotStarted(it.Status) {
			started++
		}
	}
	if tracked == 0 {
		return current
	}
	if finished == tracked {
		return model.OrderDone
	}
	if current == model.OrderDone {
		// an item was reopened
		return model.OrderProcessing
	}
	if current == model.OrderPending && started > 0 {
		return model.OrderProcessing
	}
	return current
}
