package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestSiteErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "descriptor missing")
	if !strings.Contains(err.Error(), "config (fatal): descriptor missing") {
		t.Fatalf("unexpected error string: %s", err.Error())
	}

	wrapped := Wrap(stderrors.New("boom"), CategoryRender, SeverityFatal, "conversion failed")
	if !strings.Contains(wrapped.Error(), "boom") {
		t.Fatalf("cause not included: %s", wrapped.Error())
	}
}

func TestRenderErrorCarriesPath(t *testing.T) {
	err := RenderError(stderrors.New("bad markup"), "vignettes/intro.Rmd")
	if err.Path != "vignettes/intro.Rmd" {
		t.Fatalf("expected path to be set, got %q", err.Path)
	}
	if !strings.Contains(err.Error(), "vignettes/intro.Rmd") {
		t.Fatalf("path not in message: %s", err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := WrapConfig(cause, "load config")
	if !stderrors.Is(err, cause) {
		t.Fatal("errors.Is should find the cause")
	}
}

func TestCategoryHelpers(t *testing.T) {
	err := PathError("vignettes directory missing", "/src/vignettes")
	if !IsCategory(err, CategoryPath) {
		t.Fatal("expected path category")
	}
	if IsCategory(err, CategoryConfig) {
		t.Fatal("wrong category matched")
	}
	if GetCategory(stderrors.New("plain")) != CategoryInternal {
		t.Fatal("plain errors should map to internal")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(ConfigError("bad")) {
		t.Fatal("config errors are fatal")
	}
	if IsFatal(SelectionWarning("unmatched")) {
		t.Fatal("selection warnings are not fatal")
	}
	if !IsFatal(stderrors.New("unknown")) {
		t.Fatal("unknown errors default to fatal")
	}
}
