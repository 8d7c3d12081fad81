package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codecourt/judge-engine/model"
)

func TestResolveKnownLanguages(t *testing.T) {
	tests := []struct {
		lang             model.Language
		wantSource       string
		wantCompileEmpty bool
	}{
		{model.LanguageC, "solution.c", false},
		{model.LanguageCPP, "solution.cpp", false},
		{model.LanguageGo, "solution.go", false},
		{model.LanguageJava, "Main.java", false},
		{model.LanguagePython, "solution.py", true},
	}
	for _, tc := range tests {
		t.Run(string(tc.lang), func(t *testing.T) {
			spec, err := Resolve(tc.lang)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantSource, spec.SourceName)
			assert.NotEmpty(t, spec.RunCmd)
			assert.Equal(t, tc.wantCompileEmpty, len(spec.CompileCmd) == 0)
		})
	}
}

func TestResolveUnknownLanguage(t *testing.T) {
	_, err := Resolve(model.Language("rust"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rust")
}
