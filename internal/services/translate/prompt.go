package translate

import (
	"fmt"
	"strings"

	langpkg "github.com/j-Karnika/Dubbing/internal/language"
)

// systemPrompt instructs the model to translate while keeping emotional
// register intact, and to emit nothing but the translation itself.
const systemPrompt = `You are an expert translator specializing in preserving emotional context, intensity, and cultural nuances during translation.

When translating, you must:
1. Maintain the exact emotional tone and intensity of the original text
2. Preserve cultural context and adapt idioms appropriately
3. Keep timing and rhythm suitable for voice synthesis
4. Maintain the same level of formality/informality
5. Preserve emphasis and emotional markers

Respond with ONLY the translated text, no explanations or additional content.`

func buildUserPrompt(text, sourceLang, targetLang string) string {
	source := langpkg.DisplayName(sourceLang)
	target := langpkg.DisplayName(targetLang)
	return fmt.Sprintf(
		"Translate the following %s text to %s, preserving all emotional intensity, tone, and cultural context:\n\n%q\n\nTarget language: %s",
		source, target, strings.TrimSpace(text), target,
	)
}
