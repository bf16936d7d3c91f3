package gologger

import (
	"reflect"
	"testing"

	"github.com/mekongworks/sitekit/internal/runtimeconfig"
)

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	_, err := NewProvider(runtimeconfig.LoggingConfig{Provider: "gologger", Format: "xml"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFocusNamesQualifyBareModules(t *testing.T) {
	got := focusNames([]string{"content", " engagement ", "site.http", ""})
	want := []string{"site.content", "site.engagement", "site.http"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("focusNames = %v, want %v", got, want)
	}
}
