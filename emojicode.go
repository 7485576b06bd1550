package emojicode

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/dileep123321/emojicode/resources"
)

const DECODE_LRU_SZ = 4096

// An emoji may span several codepoints (e.g. a base glyph followed by a
// variation selector), so both maps are keyed on full strings, never runes.
type Vocab map[string]string

type VocabEntry struct {
	Code  string
	Emoji string
}

// EmojiCodec converts between :shortcode: notation and emoji glyphs over a
// fixed vocabulary. The codec is immutable after construction; all methods
// are safe to call concurrently except RandomEmoji, which draws from Rand.
// The cache counters are updated atomically.
type EmojiCodec struct {
	Encoder   map[string]string
	Decoder   map[string]string
	Entries   []VocabEntry
	Cache     *lru.ARCCache
	Rand      *rand.Rand
	pattern   *regexp.Regexp
	LruHits   int64
	LruMisses int64
}

const SHORTCODE_REGEX = ":([A-Za-z0-9_+-]+):"
const CODE_REGEX = "^[A-Za-z0-9_+-]+$"
const REGEX_ERROR = "emojicode: Fatal error compiling regular expression: %v"

func NewDefaultCodec() EmojiCodec {
	codec, _ := NewCodec("default-vocab")
	return *codec
}

// NewCodec
// Returns an EmojiCodec with the vocabulary loaded for that vocabulary id.
// The id may name an embedded vocabulary, a local directory containing a
// `vocab.json`, or a remote base URL serving one.
func NewCodec(vocabId string) (*EmojiCodec, error) {
	rsrcsPtr, rsrcErr := resources.ResolveVocabId(vocabId)
	if rsrcErr != nil {
		return nil, rsrcErr
	}
	rsrcs := *rsrcsPtr
	defer rsrcs.Cleanup()

	vocabRsrc, ok := rsrcs["vocab.json"]
	if !ok {
		return nil, fmt.Errorf("vocab.json not found for vocabId: %s",
			vocabId)
	}
	vocab := make(Vocab)
	if json.Unmarshal(*vocabRsrc.Data, &vocab) != nil {
		return nil, fmt.Errorf("error unmarshalling `vocab.json` for "+
			"vocabId: %s", vocabId)
	}
	return NewCodecFromVocab(vocab)
}

// NewCodecFromVocab
// Builds a codec from an explicit code -> emoji table. The reverse index is
// derived here and the pair is treated as one immutable unit afterward.
// Entries are ordered ascending by code; when two codes map to an identical
// emoji the reverse index is built last-wins over that order, so the
// lexicographically greatest code claims the glyph.
func NewCodecFromVocab(vocab Vocab) (*EmojiCodec, error) {
	codePat, err := regexp.Compile(CODE_REGEX)
	if err != nil {
		log.Fatalf(REGEX_ERROR, err)
	}
	pattern, err := regexp.Compile(SHORTCODE_REGEX)
	if err != nil {
		log.Fatalf(REGEX_ERROR, err)
	}

	codes := make([]string, 0, len(vocab))
	for code := range vocab {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	encoder := make(map[string]string, len(vocab))
	decoder := make(map[string]string, len(vocab))
	entries := make([]VocabEntry, 0, len(vocab))
	for _, code := range codes {
		emoji := vocab[code]
		if !codePat.MatchString(code) {
			return nil, errors.New(fmt.Sprintf(
				"invalid shortcode `%s` in vocabulary", code))
		}
		if emoji == "" {
			return nil, errors.New(fmt.Sprintf(
				"empty emoji for shortcode `%s` in vocabulary", code))
		}
		encoder[code] = emoji
		decoder[emoji] = code
		entries = append(entries, VocabEntry{code, emoji})
	}

	cache, _ := lru.NewARC(DECODE_LRU_SZ)

	codec := &EmojiCodec{
		Encoder: encoder,
		Decoder: decoder,
		Entries: entries,
		Cache:   cache,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		pattern: pattern,
	}
	return codec, nil
}

// ToEmoji replaces every :shortcode: token whose code is registered with
// its emoji. Tokens with unregistered codes, and colon spans that do not
// form a token at all, are passed through verbatim.
func (codec *EmojiCodec) ToEmoji(text string) string {
	return codec.pattern.ReplaceAllStringFunc(text,
		func(match string) string {
			code := match[1 : len(match)-1]
			if emoji, ok := codec.Encoder[code]; ok {
				return emoji
			}
			return match
		})
}

// ToShortcodes replaces every registered emoji with its :shortcode: form.
// The text is rewritten once per vocabulary entry, in entry order. This is
// deliberate: when one entry's emoji is a substring of another's, whichever
// entry is processed first claims the span, and a combined single-pass scan
// would not reproduce that on overlapping input.
func (codec *EmojiCodec) ToShortcodes(text string) string {
	if lookup, ok := codec.Cache.Get(text); ok {
		atomic.AddInt64(&codec.LruHits, 1)
		return lookup.(string)
	} else {
		atomic.AddInt64(&codec.LruMisses, 1)
	}
	decoded := text
	for _, entry := range codec.Entries {
		code, ok := codec.Decoder[entry.Emoji]
		if !ok || code != entry.Code {
			// This emoji was claimed by a later entry; the reverse
			// index holds one pair per distinct emoji.
			continue
		}
		decoded = strings.ReplaceAll(decoded, entry.Emoji, ":"+code+":")
	}
	codec.Cache.Add(text, decoded)
	return decoded
}

// Codes returns every registered shortcode in ascending lexicographic
// order.
func (codec *EmojiCodec) Codes() []string {
	codes := make([]string, len(codec.Entries))
	for idx := range codec.Entries {
		codes[idx] = codec.Entries[idx].Code
	}
	return codes
}

// RandomEmoji returns n emoji drawn independently and uniformly with
// replacement from the vocabulary entries. Draws are weighted per entry,
// not per distinct emoji. For n < 1 an empty slice is returned. The
// vocabulary must be non-empty for n >= 1.
func (codec *EmojiCodec) RandomEmoji(n int) []string {
	if n < 1 {
		return []string{}
	}
	emoji := make([]string, n)
	for idx := range emoji {
		entry := codec.Entries[codec.Rand.Intn(len(codec.Entries))]
		emoji[idx] = entry.Emoji
	}
	return emoji
}

// Get
// Looks up a shortcode and returns its emoji. If the code is not
// registered, nil is returned.
func (codec *EmojiCodec) Get(code string) *string {
	if emoji, ok := codec.Encoder[code]; !ok {
		return nil
	} else {
		return &emoji
	}
}

var DefaultCodec = NewDefaultCodec()
