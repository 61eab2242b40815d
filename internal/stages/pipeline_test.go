package stages

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
)

// mockStage is a test stage that records calls and returns a predefined error.
type mockStage struct {
	name     string
	requires domain.Requirement
	err      error
	calls    int
}

func (m *mockStage) Name() string {
	return m.name
}

func (m *mockStage) Requires() domain.Requirement {
	return m.requires
}

func (m *mockStage) Apply(_ context.Context, _ *domain.Dataset) error {
	m.calls++
	return m.err
}

func newDataset() *domain.Dataset {
	return &domain.Dataset{
		Movies: domain.NewTable("movies", domain.ColumnID, domain.Column{Name: domain.ColumnID}),
		People: domain.NewTable("people", domain.ColumnID,
			domain.Column{Name: domain.ColumnID}, domain.Column{Name: domain.ColumnName}),
		Stars: domain.NewTable("stars", "",
			domain.Column{Name: domain.ColumnPersonID}, domain.Column{Name: domain.ColumnMovieID}),
	}
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 stages, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockStage{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 stage, got %d", p.Len())
	}
	if got := p.Names(); len(got) != 1 || got[0] != "test" {
		t.Errorf("unexpected names: %v", got)
	}
}

func TestPipeline_Run_NilDataset(t *testing.T) {
	p := NewPipeline()

	_, err := p.Run(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil dataset")
	}
}

func TestPipeline_Run_EmptyPipeline(t *testing.T) {
	p := NewPipeline()

	ran, err := p.Run(context.Background(), newDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 0 {
		t.Errorf("expected no stages to run, got %v", ran)
	}
}

func TestPipeline_Run_InOrder(t *testing.T) {
	first := &mockStage{name: "first"}
	second := &mockStage{name: "second"}
	p := NewPipeline(first, second)

	ran, err := p.Run(context.Background(), newDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Errorf("unexpected run order: %v", ran)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("expected one call each, got %d and %d", first.calls, second.calls)
	}
}

func TestPipeline_Run_StageError(t *testing.T) {
	expectedErr := errors.New("stage failed")
	failing := &mockStage{name: "failing", err: expectedErr}
	after := &mockStage{name: "after"}

	p := NewPipeline(failing, after)

	ran, err := p.Run(context.Background(), newDataset())
	if err == nil {
		t.Fatal("expected error from failing stage")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped error, got: %v", err)
	}
	if len(ran) != 0 {
		t.Errorf("expected no completed stages, got %v", ran)
	}
	if after.calls != 0 {
		t.Error("stage after the failure must not run")
	}
}

func TestPipeline_Run_SchemaContract(t *testing.T) {
	needy := &mockStage{
		name:     "needy",
		requires: domain.Requirement{domain.RolePeople: {domain.ColumnBirth}},
	}
	p := NewPipeline(needy)

	_, err := p.Run(context.Background(), newDataset())
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
	if needy.calls != 0 {
		t.Error("stage must not run when its contract fails")
	}
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stage := &mockStage{name: "never"}
	_, err := NewPipeline(stage).Run(ctx, newDataset())

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if stage.calls != 0 {
		t.Error("stage must not run after cancellation")
	}
}
