package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"sereno.app/mindgarden/internal/entity"
	gardenRepo "sereno.app/mindgarden/internal/modules/garden/repository"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"
	"sereno.app/mindgarden/internal/modules/journal/dto"
	"sereno.app/mindgarden/internal/modules/journal/repository"
	"sereno.app/mindgarden/internal/testutil"
	"sereno.app/mindgarden/pkg/apperror"
)

func newTestService(t *testing.T) JournalService {
	t.Helper()

	db := testutil.OpenTestDB(t)
	garden := gardenService.NewGardenService(gardenRepo.NewGardenRepository(db), nil, nil, 0)
	return NewJournalService(repository.NewJournalRepository(db), garden)
}

func TestCreateJournalSanitizesContent(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	resp, err := svc.CreateJournal(ctx, userID, dto.CreateJournalRequest{
		Title:   "A hard day",
		Content: `Felt tense before the meeting.<script>alert("x")</script> Breathing helped.`,
	})
	if err != nil {
		t.Fatalf("CreateJournal: %v", err)
	}

	if strings.Contains(resp.Entry.Content, "<script>") {
		t.Errorf("script tag survived sanitization: %q", resp.Entry.Content)
	}
	if !strings.Contains(resp.Entry.Content, "Breathing helped.") {
		t.Errorf("legitimate text lost: %q", resp.Entry.Content)
	}
	if resp.Entry.Kind != entity.JournalKindJournal {
		t.Errorf("kind = %q, want default %q", resp.Entry.Kind, entity.JournalKindJournal)
	}
	if resp.Scoring.PointsAwarded != 10 {
		t.Errorf("points = %d, want 10", resp.Scoring.PointsAwarded)
	}
}

func TestCreateGratitudeEntry(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	resp, err := svc.CreateJournal(ctx, userID, dto.CreateJournalRequest{
		Kind:    entity.JournalKindGratitude,
		Title:   "Three good things",
		Content: "Sunshine, coffee, a call with mom.",
	})
	if err != nil {
		t.Fatalf("CreateJournal: %v", err)
	}

	if resp.Entry.Kind != entity.JournalKindGratitude {
		t.Errorf("kind = %q, want %q", resp.Entry.Kind, entity.JournalKindGratitude)
	}
	if resp.Scoring.ActivityType != gardenService.ActivityGratitude {
		t.Errorf("activity = %q, want %q", resp.Scoring.ActivityType, gardenService.ActivityGratitude)
	}
	if resp.Scoring.PointsAwarded != 10 {
		t.Errorf("points = %d, want 10", resp.Scoring.PointsAwarded)
	}
}

func TestJournalOwnership(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	created, err := svc.CreateJournal(ctx, owner, dto.CreateJournalRequest{
		Title:   "Private",
		Content: "Only mine.",
	})
	if err != nil {
		t.Fatalf("CreateJournal: %v", err)
	}

	if _, err := svc.GetJournal(ctx, stranger, created.Entry.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("stranger read err = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteJournal(ctx, stranger, created.Entry.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("stranger delete err = %v, want ErrForbidden", err)
	}

	if _, err := svc.GetJournal(ctx, owner, created.Entry.ID); err != nil {
		t.Errorf("owner read err = %v", err)
	}
}

func TestUpdateAndDeleteJournal(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	created, err := svc.CreateJournal(ctx, userID, dto.CreateJournalRequest{
		Title:   "Draft",
		Content: "First thoughts.",
	})
	if err != nil {
		t.Fatalf("CreateJournal: %v", err)
	}

	newContent := "Second thoughts.<img src=x onerror=alert(1)>"
	updated, err := svc.UpdateJournal(ctx, userID, created.Entry.ID, dto.UpdateJournalRequest{
		Content: &newContent,
	})
	if err != nil {
		t.Fatalf("UpdateJournal: %v", err)
	}
	if strings.Contains(updated.Content, "onerror") {
		t.Errorf("event handler survived sanitization: %q", updated.Content)
	}
	if updated.Title != "Draft" {
		t.Errorf("title changed unexpectedly: %q", updated.Title)
	}

	if err := svc.DeleteJournal(ctx, userID, created.Entry.ID); err != nil {
		t.Fatalf("DeleteJournal: %v", err)
	}
	if _, err := svc.GetJournal(ctx, userID, created.Entry.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("read after delete err = %v, want ErrNotFound", err)
	}
}
