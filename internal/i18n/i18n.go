// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the user-facing message catalog for parabola.
//
// Messages are looked up by key through golang.org/x/text/message printers.
// English is the fallback; Brazilian Portuguese carries the program's
// original wording.
package i18n

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyBanner           = "banner"
	KeyPromptA          = "prompt.a"
	KeyPromptB          = "prompt.b"
	KeyPromptC          = "prompt.c"
	KeyRoots            = "roots"
	KeyError            = "error"
	KeyLeadingZero      = "error.leading_zero"
	KeyInsufficient     = "error.insufficient_points"
	KeyInvalidNumber    = "error.invalid_number"
	KeyChartTitle       = "chart.title"
	KeyChartSaved       = "chart.saved"
	KeyViewerHelp       = "viewer.help"
	KeyDiscriminant     = "discriminant"
	KeyVertex           = "vertex"
	KeyNatureTwoReal    = "nature.two_real"
	KeyNatureRepeated   = "nature.repeated_real"
	KeyNatureComplex    = "nature.complex_conjugate"
	KeyConfigReloaded   = "config.reloaded"
	KeyInputInterrupted = "input.interrupted"
)

// Supported lists the languages with a full catalog, fallback first.
var Supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var entries = map[string]map[language.Tag]string{
	KeyBanner: {
		language.English:             "Quadratic Equation System",
		language.BrazilianPortuguese: "Sistema de Equação do Segundo Grau",
	},
	KeyPromptA: {
		language.English:             "Enter the value of a: ",
		language.BrazilianPortuguese: "Informe o valor de a: ",
	},
	KeyPromptB: {
		language.English:             "Enter the value of b: ",
		language.BrazilianPortuguese: "Informe o valor de b: ",
	},
	KeyPromptC: {
		language.English:             "Enter the value of c: ",
		language.BrazilianPortuguese: "Informe o valor de c: ",
	},
	KeyRoots: {
		language.English:             "Roots: %[1]s and %[2]s",
		language.BrazilianPortuguese: "Raízes: %[1]s e %[2]s",
	},
	KeyError: {
		language.English:             "Error: %s",
		language.BrazilianPortuguese: "Erro: %s",
	},
	KeyLeadingZero: {
		language.English:             "The coefficient 'a' cannot be zero in a second-degree equation.",
		language.BrazilianPortuguese: "O coeficiente 'a' não pode ser zero em uma equação do segundo grau.",
	},
	KeyInsufficient: {
		language.English:             "The number of points must be at least 2.",
		language.BrazilianPortuguese: "O número de pontos deve ser pelo menos 2.",
	},
	KeyInvalidNumber: {
		language.English:             "could not convert %q to a number",
		language.BrazilianPortuguese: "não foi possível converter %q em número",
	},
	KeyChartTitle: {
		language.English:             "Quadratic Equation Graph",
		language.BrazilianPortuguese: "Gráfico da Equação do Segundo Grau",
	},
	KeyChartSaved: {
		language.English:             "Chart saved to %s",
		language.BrazilianPortuguese: "Gráfico salvo em %s",
	},
	KeyViewerHelp: {
		language.English:             "close",
		language.BrazilianPortuguese: "fechar",
	},
	KeyDiscriminant: {
		language.English:             "Discriminant",
		language.BrazilianPortuguese: "Discriminante",
	},
	KeyVertex: {
		language.English:             "Vertex",
		language.BrazilianPortuguese: "Vértice",
	},
	KeyNatureTwoReal: {
		language.English:             "two distinct real roots",
		language.BrazilianPortuguese: "duas raízes reais distintas",
	},
	KeyNatureRepeated: {
		language.English:             "one repeated real root",
		language.BrazilianPortuguese: "uma raiz real dupla",
	},
	KeyNatureComplex: {
		language.English:             "complex conjugate roots",
		language.BrazilianPortuguese: "raízes complexas conjugadas",
	},
	KeyConfigReloaded: {
		language.English:             "configuration reloaded",
		language.BrazilianPortuguese: "configuração recarregada",
	},
	KeyInputInterrupted: {
		language.English:             "input interrupted",
		language.BrazilianPortuguese: "entrada interrompida",
	},
}

var (
	cat     *catalog.Builder
	catOnce sync.Once
	matcher = language.NewMatcher(Supported)
)

func buildCatalog() *catalog.Builder {
	catOnce.Do(func() {
		cat = catalog.NewBuilder(catalog.Fallback(language.English))
		for key, byLang := range entries {
			for tag, msg := range byLang {
				// SetString only fails on malformed messages; entries are static.
				_ = cat.SetString(tag, key, msg)
			}
		}
	})
	return cat
}

// Match returns the best supported language for a preference such as
// "pt-BR", "pt_BR.UTF-8" or "en". Empty and "auto" consult the environment.
func Match(pref string) language.Tag {
	pref = strings.TrimSpace(pref)
	if pref == "" || strings.EqualFold(pref, "auto") {
		pref = fromEnv()
	}
	if pref == "" {
		return language.English
	}
	tag, _ := language.MatchStrings(matcher, normalizeLocale(pref))
	base, _ := tag.Base()
	for _, s := range Supported {
		if b, _ := s.Base(); b == base {
			return s
		}
	}
	return language.English
}

// fromEnv reads the POSIX locale variables in precedence order.
func fromEnv() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

// normalizeLocale turns "pt_BR.UTF-8" into "pt-BR".
func normalizeLocale(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Printer formats catalog messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a printer for the best match of pref.
func NewPrinter(pref string) *Printer {
	tag := Match(pref)
	return &Printer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(buildCatalog())),
	}
}

// Tag returns the language the printer resolved to.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Sprintf formats the message stored under key.
// Numeric arguments are localized by x/text, so callers pass preformatted
// strings where exact text matters.
func (p *Printer) Sprintf(key string, args ...interface{}) string {
	return p.p.Sprintf(key, args...)
}
