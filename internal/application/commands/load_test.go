package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vartree/internal/domain"
)

func TestLoadModelCommand_Execute(t *testing.T) {
	src := &stubSource{doc: installerState()}

	result, err := NewLoadModelCommand(src, "de").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Model.Len() != 12 {
		t.Errorf("expected 12 nodes, got %d", result.Model.Len())
	}
	if got := result.Model.HeaderData(0, domain.Horizontal, domain.RoleDisplay).String(); got != "Schlüssel" {
		t.Errorf("expected German header, got %q", got)
	}
	if !strings.Contains(result.Message, "12 nodes") {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestLoadModelCommand_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewLoadModelCommand(&stubSource{err: boom}, "").Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected source error, got %v", err)
	}
}

func TestReloadCommand_Execute(t *testing.T) {
	src := &stubSource{doc: installerState()}
	loaded, err := NewLoadModelCommand(src, "").Execute(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	model := loaded.Model

	var phases []domain.ResetPhase
	model.OnReset(func(p domain.ResetPhase) { phases = append(phases, p) })

	src.doc = domain.Map(domain.Entry{Key: "only", Value: domain.Scalar(1)})
	result, err := NewReloadCommand(src, model).Execute(context.Background())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if result.Model != model {
		t.Error("reload must rebuild the same model")
	}
	if model.Len() != 2 || model.RowCount(domain.ModelIndex{}) != 1 {
		t.Errorf("model not rebuilt: len=%d", model.Len())
	}
	if len(phases) != 2 || phases[0] != domain.ResetBegin || phases[1] != domain.ResetEnd {
		t.Errorf("unexpected reset notifications %v", phases)
	}
}

func TestReloadCommand_KeepsDocumentOnError(t *testing.T) {
	src := &stubSource{doc: installerState()}
	loaded, _ := NewLoadModelCommand(src, "").Execute(context.Background())

	src.err = errors.New("gone")
	if _, err := NewReloadCommand(src, loaded.Model).Execute(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if loaded.Model.Len() != 12 {
		t.Errorf("model changed after failed reload: len=%d", loaded.Model.Len())
	}
}
