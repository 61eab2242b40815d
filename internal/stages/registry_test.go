package stages

import (
	"errors"
	"reflect"
	"testing"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/stages/normalise"
	"github.com/custodia-labs/moviegraph-clean/internal/stages/rename"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Build_Success(t *testing.T) {
	r := NewRegistry()

	r.Register("test", func(cfg map[string]any) (driven.Stage, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &mockStage{name: name}, nil
	})

	stage, err := r.Build("test", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if stage.Name() != "custom" {
		t.Errorf("expected name 'custom', got %q", stage.Name())
	}
}

func TestRegistry_Build_UnknownStage(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("unknown", nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRegistry_Names_Sorted(t *testing.T) {
	r := NewRegistry()
	if len(r.Names()) != 0 {
		t.Errorf("expected 0 names, got %d", len(r.Names()))
	}

	r.Register("beta", func(_ map[string]any) (driven.Stage, error) { return &mockStage{name: "beta"}, nil })
	r.Register("alpha", func(_ map[string]any) (driven.Stage, error) { return &mockStage{name: "alpha"}, nil })

	if got := r.Names(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("unexpected names: %v", got)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, name := range []string{"remove_orphans", "connectivity", "lowercase", "strip_accents", "rename"} {
		if !r.Has(name) {
			t.Errorf("expected %q to be registered after RegisterDefaults", name)
			continue
		}
		stage, err := r.Build(name, nil)
		if err != nil {
			t.Fatalf("Build %s with nil config failed: %v", name, err)
		}
		if stage.Name() != name {
			t.Errorf("expected name %q, got %q", name, stage.Name())
		}
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name string
		opts domain.PipelineOptions
		want []string
	}{
		{
			name: "filter and rename only",
			opts: domain.PipelineOptions{},
			want: []string{"remove_orphans", "rename"},
		},
		{
			name: "aggregate",
			opts: domain.PipelineOptions{Aggregate: true},
			want: []string{"remove_orphans", "connectivity", "rename"},
		},
		{
			name: "normalise",
			opts: domain.PipelineOptions{Normalize: true},
			want: []string{"remove_orphans", "strip_accents", "lowercase", "rename"},
		},
		{
			name: "everything",
			opts: domain.PipelineOptions{Aggregate: true, Normalize: true},
			want: []string{"remove_orphans", "connectivity", "strip_accents", "lowercase", "rename"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plan(tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildLowercase_WithColumn(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	stage, err := r.Build("lowercase", map[string]any{"column": "title"})
	if err != nil {
		t.Fatalf("Build lowercase failed: %v", err)
	}

	if got := stage.(*normalise.Stage).Column(); got != "title" {
		t.Errorf("expected column 'title', got %q", got)
	}
}

func TestBuildRename_WithConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	stage, err := r.Build("rename", map[string]any{
		"people": map[string]any{"name": "full_name", "birth": "born"},
	})
	if err != nil {
		t.Fatalf("Build rename failed: %v", err)
	}

	want := []rename.Mapping{
		{Role: domain.RolePeople, From: "birth", To: "born"},
		{Role: domain.RolePeople, From: "name", To: "full_name"},
	}
	if got := stage.(*rename.Stage).Mappings(); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected mappings: %v", got)
	}
}

func TestBuildRename_InvalidConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		name string
		cfg  map[string]any
	}{
		{"table not a map", map[string]any{"people": "birth"}},
		{"target not a string", map[string]any{"stars": map[string]any{"person_id": 3}}},
		{"empty target", map[string]any{"stars": map[string]any{"person_id": ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Build("rename", tt.cfg)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegistry_Assemble(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	var asked []string
	p, err := r.Assemble(domain.PipelineOptions{Aggregate: true}, func(stage string) map[string]any {
		asked = append(asked, stage)
		return nil
	})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := []string{"remove_orphans", "connectivity", "rename"}
	if got := p.(*Pipeline).Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("pipeline stages = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(asked, want) {
		t.Errorf("config requested for %v, want %v", asked, want)
	}
}

func TestRegistry_Assemble_BadStageConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	_, err := r.Assemble(domain.PipelineOptions{}, func(stage string) map[string]any {
		if stage == "rename" {
			return map[string]any{"people": 1}
		}
		return nil
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegistry_Assemble_MissingBuilder(t *testing.T) {
	_, err := NewRegistry().Assemble(domain.DefaultPipelineOptions(), nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}
