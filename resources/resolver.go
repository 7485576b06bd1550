package resources

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
)

// The only resource a vocabulary needs is its `vocab.json`, a flat JSON
// object mapping shortcodes to emoji.
const VOCAB_RESOURCE = "vocab.json"

type ResourceEntry struct {
	file interface{}
	Data *[]byte
}

type Resources map[string]ResourceEntry

func (rsrcs *Resources) Cleanup() {
	for _, rsrc := range *rsrcs {
		file := rsrc.file
		switch t := file.(type) {
		case *os.File:
			t.Close()
		case *fs.File:
			(*t).Close()
		}
	}
}

// WriteCounter counts the number of bytes written to it, and every 10
// seconds, it prints a message reporting the number of bytes written so far.
type WriteCounter struct {
	Total uint64
	Last  time.Time
	Path  string
	Size  uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Now().Sub(wc.Last).Seconds() > 10 {
		wc.Last = time.Now()
		log.Print(fmt.Sprintf("Downloading %s... %s / %s completed.",
			wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size)))
	}
	return n, nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// Fetch
// Given a base URI and a resource name, determines if the resource is local
// or remote. If the resource is local, it returns a file handle to the
// resource; if remote, it fetches the resource and returns a ReadCloser to
// it.
func Fetch(uri string, rsrc string) (io.ReadCloser, error) {
	if isValidUrl(uri) {
		return FetchHTTP(uri, rsrc)
	} else if _, err := os.Stat(path.Join(uri, rsrc)); !os.IsNotExist(err) {
		if handle, fileErr := os.Open(path.Join(uri, rsrc)); fileErr != nil {
			return nil, errors.New(
				fmt.Sprintf("error opening %s/%s: %v",
					uri, rsrc, fileErr))
		} else {
			return handle, fileErr
		}
	} else {
		return nil, errors.New(
			fmt.Sprintf("cannot resolve %s/%s: not a local path or URL",
				uri, rsrc))
	}
}

// Size
// Given a base URI and a resource name, determine the size of the resource.
func Size(uri string, rsrc string) (uint, error) {
	if isValidUrl(uri) {
		return SizeHTTP(uri, rsrc)
	} else if fsz, err := os.Stat(path.Join(uri, rsrc)); !os.IsNotExist(err) {
		return uint(fsz.Size()), nil
	} else {
		return 0, errors.New(
			fmt.Sprintf("cannot resolve %s/%s: not a local path or URL",
				uri, rsrc))
	}
}

// AddEntry
// Add a resource to the Resources map, opening it as a mmap.Map.
func (rsrcs *Resources) AddEntry(name string, file *os.File) error {
	fileMmap, mmapErr := readMmap(file)
	if mmapErr != nil {
		return errors.New(
			fmt.Sprintf("error trying to mmap file: %s",
				mmapErr))
	} else {
		(*rsrcs)[name] = ResourceEntry{file, fileMmap}
	}
	return nil
}

// ResolveResources resolves the vocabulary resource at a given uri. Local
// files are mmapped in place; remote resources are downloaded into dir
// first, with progress reported through a WriteCounter.
func ResolveResources(uri string, dir *string) (*Resources, error) {
	foundResources := make(Resources, 0)

	log.Printf("Resolving %s/%s... ", uri, VOCAB_RESOURCE)
	rsrcSize, rsrcSizeErr := Size(uri, VOCAB_RESOURCE)
	if rsrcSizeErr != nil {
		return &foundResources, errors.New(
			fmt.Sprintf("cannot retrieve required `%s` from `%s`: %s",
				VOCAB_RESOURCE, uri, rsrcSizeErr))
	}

	var rsrcFile os.File
	if !isValidUrl(uri) {
		openFile, openErr := os.OpenFile(
			path.Join(uri, VOCAB_RESOURCE), os.O_RDONLY, 0755)
		if openErr != nil {
			return &foundResources, errors.New(
				fmt.Sprintf("error opening '%s': %s",
					VOCAB_RESOURCE, openErr))
		}
		rsrcFile = *openFile
	} else if rsrcReader, rsrcErr := Fetch(uri, VOCAB_RESOURCE); rsrcErr != nil {
		return &foundResources, errors.New(
			fmt.Sprintf("cannot retrieve `%s` from `%s`: %s",
				VOCAB_RESOURCE, uri, rsrcErr))
	} else {
		openFile, rsrcFileErr := os.OpenFile(
			path.Join(*dir, VOCAB_RESOURCE),
			os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0755)
		if rsrcFileErr != nil {
			return &foundResources, errors.New(
				fmt.Sprintf("error opening '%s' for write: %s",
					VOCAB_RESOURCE, rsrcFileErr))
		}
		rsrcFile = *openFile
		counter := &WriteCounter{
			Last: time.Now(),
			Path: fmt.Sprintf("%s/%s", uri, VOCAB_RESOURCE),
			Size: uint64(rsrcSize),
		}
		bytesDownloaded, ioErr := io.Copy(&rsrcFile,
			io.TeeReader(rsrcReader, counter))
		rsrcReader.Close()
		if ioErr != nil {
			return &foundResources, errors.New(
				fmt.Sprintf("error downloading '%s': %s",
					VOCAB_RESOURCE, ioErr))
		}
		if _, seekErr := rsrcFile.Seek(0, 0); seekErr != nil {
			return &foundResources, errors.New(
				fmt.Sprintf("cannot seek `%s`: %s",
					VOCAB_RESOURCE, seekErr))
		}
		log.Println(fmt.Sprintf("Downloaded %s/%s... %s completed.",
			uri, VOCAB_RESOURCE,
			humanize.Bytes(uint64(bytesDownloaded))))
	}
	if mmapErr := foundResources.AddEntry(VOCAB_RESOURCE,
		&rsrcFile); mmapErr != nil {
		return &foundResources, mmapErr
	}
	return &foundResources, nil
}

// ResolveVocabId
// Resolves a vocabulary id to its resources, from embedded, local
// filesystem, or remote.
func ResolveVocabId(vocabId string) (*Resources, error) {
	if _, vocabErr := EmbeddedDirExists(vocabId); vocabErr == nil {
		rsrcs := make(Resources, 0)
		embedded := GetEmbeddedResource(vocabId + "/" + VOCAB_RESOURCE)
		if embedded == nil {
			return nil, errors.New(
				fmt.Sprintf("embedded vocabulary `%s` has no `%s`",
					vocabId, VOCAB_RESOURCE))
		}
		rsrcs[VOCAB_RESOURCE] = *embedded
		return &rsrcs, nil
	}
	dir, dirErr := os.MkdirTemp("", "emojicode")
	if dirErr != nil {
		return nil, dirErr
	}
	defer os.RemoveAll(dir)
	return ResolveResources(vocabId, &dir)
}
