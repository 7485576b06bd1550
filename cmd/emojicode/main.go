package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dileep123321/emojicode"
)

func usage() {
	fmt.Fprintf(os.Stderr,
		"usage: emojicode <replace|revert|list|random|serve> [args]\n\n"+
			"  replace TEXT...  replace :shortcode: with emoji\n"+
			"  revert TEXT...   replace known emoji with :shortcode:\n"+
			"  list             list available shortcodes\n"+
			"  random [-n N]    print random emoji\n"+
			"  serve [-p PORT]  serve a webpage showing the emoji list\n")
}

func newCodec(vocabId string) *emojicode.EmojiCodec {
	codec, err := emojicode.NewCodec(vocabId)
	if err != nil {
		log.Fatal(err)
	}
	return codec
}

func vocabFlag(fs *flag.FlagSet) *string {
	return fs.String("vocab", "default-vocab",
		"vocabulary id [default-vocab, local path, url]")
}

func textArg(fs *flag.FlagSet, args []string) string {
	fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		log.Fatal("Must provide text to transform")
	}
	return strings.Join(fs.Args(), " ")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "replace":
		fs := flag.NewFlagSet("replace", flag.ExitOnError)
		vocabId := vocabFlag(fs)
		text := textArg(fs, os.Args[2:])
		fmt.Println(newCodec(*vocabId).ToEmoji(text))
	case "revert":
		fs := flag.NewFlagSet("revert", flag.ExitOnError)
		vocabId := vocabFlag(fs)
		text := textArg(fs, os.Args[2:])
		fmt.Println(newCodec(*vocabId).ToShortcodes(text))
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		vocabId := vocabFlag(fs)
		fs.Parse(os.Args[2:])
		codec := newCodec(*vocabId)
		for _, entry := range codec.Entries {
			fmt.Printf(":%s:\t%s\n", entry.Code, entry.Emoji)
		}
	case "random":
		fs := flag.NewFlagSet("random", flag.ExitOnError)
		vocabId := vocabFlag(fs)
		count := fs.Int("n", 1, "number of emoji to return")
		fs.Parse(os.Args[2:])
		emoji := newCodec(*vocabId).RandomEmoji(*count)
		fmt.Println(strings.Join(emoji, " "))
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		vocabId := vocabFlag(fs)
		port := fs.Int("p", 8000, "port to serve on")
		fs.Parse(os.Args[2:])
		serve(newCodec(*vocabId), *port)
	default:
		usage()
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
