// If you are AI: This file implements the Registry of named documents served as script snippets.
// Documents are decoded and rendered once at load time; lookups only read.

package docs

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/core/value"
)

var ErrInvalidVarName = errors.New("invalid variable name")

// Document is a named value with its pre-rendered script snippet.
type Document struct {
	Name     string
	Path     string
	VarName  string
	Value    value.Value
	Script   string
	LoadedAt time.Time
}

// Registry maps document names to loaded documents.
// Lock expectations: Mutex-protected for concurrent access.
type Registry struct {
	mu         sync.RWMutex
	docs       map[string]*Document
	serializer *jsvar.Serializer
}

// NewRegistry creates an empty registry that renders with the given serializer.
func NewRegistry(serializer *jsvar.Serializer) *Registry {
	return &Registry{
		docs:       make(map[string]*Document),
		serializer: serializer,
	}
}

// Render builds a Document from an already decoded value.
func (r *Registry) Render(name, varName string, v value.Value) (*Document, error) {
	if varName == "" {
		varName = jsvar.DefaultVarName
	}
	if !jsvar.ValidVarName(varName) {
		return nil, fmt.Errorf("document %s: %w: %q", name, ErrInvalidVarName, varName)
	}

	script, err := r.serializer.Embed(v, varName)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", name, err)
	}

	return &Document{
		Name:     name,
		VarName:  varName,
		Value:    v,
		Script:   script,
		LoadedAt: time.Now(),
	}, nil
}

// LoadFile decodes the file at path, renders it and stores it under name.
// The format is taken from the file extension.
func (r *Registry) LoadFile(name, path, varName string) (*Document, error) {
	format, err := value.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", name, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", name, err)
	}
	defer f.Close()

	v, err := value.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", name, err)
	}

	doc, err := r.Render(name, varName, v)
	if err != nil {
		return nil, err
	}
	doc.Path = path

	r.Put(doc)
	return doc, nil
}

// Put stores doc, replacing any document with the same name.
func (r *Registry) Put(doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.Name] = doc
}

// Get retrieves a document by name, returning nil if not found.
func (r *Registry) Get(name string) *Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.docs[name]
}

// Remove deletes a document. Returns false if it was not registered.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[name]; !exists {
		return false
	}
	delete(r.docs, name)
	return true
}

// Count returns the number of registered documents.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// List returns all documents sorted by name.
func (r *Registry) List() []*Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Document, 0, len(r.docs))
	for _, doc := range r.docs {
		list = append(list, doc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
