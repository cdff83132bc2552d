package i18n

import "testing"

func TestResolveTag(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{requested: "", want: "en-US"},
		{requested: "pt-BR", want: "pt-BR"},
		{requested: "pt_BR", want: "pt-BR"},
		{requested: "pt", want: "pt-BR"},
		{requested: "en-GB", want: "en-US"},
		{requested: "fr-FR,pt;q=0.8", want: "pt-BR"},
		{requested: "ja", want: "en-US"},
		{requested: "!!", want: "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			if got := ResolveTag(tt.requested).String(); got != tt.want {
				t.Fatalf("ResolveTag(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestPrinterUsesCatalog(t *testing.T) {
	if got := Printer(ResolveTag("pt-BR")).Sprintf("tui.game.total"); got != "Total" {
		t.Fatalf("pt-BR total = %q", got)
	}
	if got := Printer(Default()).Sprintf("tui.game.round", 4); got != "Round 4" {
		t.Fatalf("en-US round = %q", got)
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	tags := Supported()
	tags[0] = tags[1]
	if Default().String() != "en-US" {
		t.Fatal("expected Supported to return a copy")
	}
}
