// Package tts synthesizes on-demand pronunciation audio for catalog words
// via Amazon Polly, with Redis caching so repeat requests for the same
// (language, text) pair don't re-invoke Polly.
package tts

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"

	"vocabpool/internal/logging"
)

var log = logging.Named("tts")

// voice pairs a Polly voice and language code for one supported language.
type voice struct {
	id       pollytypes.VoiceId
	langCode string
	rate     string
}

// voicesByLanguage maps a catalog Word.Language value to its Polly voice.
// Add an entry here to light up speech for a new language; words in any
// other language simply get ErrUnsupportedLanguage.
var voicesByLanguage = map[string]voice{
	"en": {id: pollytypes.VoiceIdMatthew, langCode: "en-US", rate: "85%"},
	"es": {id: pollytypes.VoiceIdLucia, langCode: "es-ES", rate: "85%"},
	"fr": {id: pollytypes.VoiceIdLea, langCode: "fr-FR", rate: "85%"},
	"de": {id: pollytypes.VoiceIdVicki, langCode: "de-DE", rate: "85%"},
	"zh": {id: pollytypes.VoiceIdZhiyu, langCode: "cmn-CN", rate: "75%"},
	"ja": {id: pollytypes.VoiceIdTakumi, langCode: "ja-JP", rate: "80%"},
}

// Cache is the subset of internal/redis.SpeechCache this package needs,
// kept as an interface so tests can swap in a fake.
type Cache interface {
	Get(ctx context.Context, language, text string) ([]byte, bool)
	Set(ctx context.Context, language, text string, audio []byte) error
}

// ErrUnsupportedLanguage is returned when no voice is configured for a
// requested language.
type ErrUnsupportedLanguage struct{ Language string }

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("tts: no voice configured for language %q", e.Language)
}

// Synthesizer turns text into speech audio, Redis-cached by (language, text).
type Synthesizer struct {
	polly   *polly.Client
	cache   Cache
	enabled bool
}

// New builds a Synthesizer. If region is empty, synthesis is disabled and
// Speak always returns ErrDisabled — matching an environment with no AWS
// credentials configured.
func New(ctx context.Context, region string, cache Cache) *Synthesizer {
	s := &Synthesizer{cache: cache}
	if region == "" {
		log.Warn().Msg("no AWS region configured, speech synthesis disabled")
		return s
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Warn().Err(err).Msg("failed to load AWS config, speech synthesis disabled")
		return s
	}

	s.polly = polly.NewFromConfig(awsCfg)
	s.enabled = true
	log.Info().Str("region", region).Msg("amazon polly enabled")
	return s
}

// ErrDisabled is returned by Speak when no AWS region was configured.
var ErrDisabled = fmt.Errorf("tts: speech synthesis is not configured")

// Speak returns MP3 audio for text in the given language, serving from
// cache when available.
func (s *Synthesizer) Speak(ctx context.Context, language, text string) ([]byte, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	v, ok := voicesByLanguage[language]
	if !ok {
		return nil, &ErrUnsupportedLanguage{Language: language}
	}

	if cached, ok := s.cache.Get(ctx, language, text); ok {
		return cached, nil
	}

	ssml := fmt.Sprintf(`<speak><prosody rate="%s">%s</prosody></speak>`, v.rate, text)
	out, err := s.polly.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         &ssml,
		TextType:     pollytypes.TextTypeSsml,
		OutputFormat: pollytypes.OutputFormatMp3,
		VoiceId:      v.id,
		Engine:       pollytypes.EngineNeural,
		LanguageCode: pollytypes.LanguageCode(v.langCode),
	})
	if err != nil {
		return nil, fmt.Errorf("polly synthesize speech: %w", err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("read polly audio stream: %w", err)
	}

	if err := s.cache.Set(ctx, language, text, audio); err != nil {
		log.Warn().Err(err).Msg("failed to cache synthesized speech")
	}
	return audio, nil
}
