package llm

import "testing"

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MOCKVIEW_LLM_PROVIDER", "MOCKVIEW_ANTHROPIC_API_KEY", "MOCKVIEW_OPENAI_API_KEY",
		"MOCKVIEW_GEMINI_API_KEY", "MOCKVIEW_OPENROUTER_API_KEY", "MOCKVIEW_OPENAI_MODEL", "MOCKVIEW_LLM_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv_Explicit(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("MOCKVIEW_LLM_PROVIDER", "openai")
	t.Setenv("MOCKVIEW_OPENAI_API_KEY", "sk-test")
	t.Setenv("MOCKVIEW_OPENAI_MODEL", "gpt-4.1-mini")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("openai config = %+v", cfg.OpenAI)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestConfigFromEnv_Discovers(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("discovered config = %+v", cfg)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("model default lost: %q", cfg.Anthropic.Model)
	}
}

func TestConfigFromEnv_NothingSet(t *testing.T) {
	clearLLMEnv(t)
	cfg := ConfigFromEnv()
	if cfg.Enabled() {
		t.Fatalf("expected coaching disabled, got provider %q", cfg.Provider)
	}
}

func TestApplyEnv_KeepsFileProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	cfg.ApplyEnv()
	if cfg.Provider != ProviderMock {
		t.Fatalf("provider overridden by discovery: %q", cfg.Provider)
	}
}

func TestConfigFromEnv_GenericModel(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("MOCKVIEW_LLM_MODEL", "gemini-2.5-pro")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderGemini || cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("config = %+v", cfg)
	}
}
