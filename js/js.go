package main

//go:generate gopherjs build --minify

import (
	"log"

	"github.com/gopherjs/gopherjs/js"

	"github.com/dileep123321/emojicode"
)

var codec = emojicode.DefaultCodec

func Emojify(text string) string {
	return codec.ToEmoji(text)
}

func Demojify(text string) string {
	return codec.ToShortcodes(text)
}

func Codes() []string {
	return codec.Codes()
}

func RandomEmoji(n int) []string {
	return codec.RandomEmoji(n)
}

func init() {
	js.Module.Get("exports").Set("emojify", Emojify)
	js.Module.Get("exports").Set("demojify", Demojify)
	js.Module.Get("exports").Set("codes", Codes)
	js.Module.Get("exports").Set("randomEmoji", RandomEmoji)
	log.Printf("Emoji shortcode codec loaded")
}

func main() {

}
