// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package games

import (
	"math/rand"
	"os"
	"strings"
	"sync"
)

// Book is a list of starting positions which are handed out one at a
// time, either in order or at random. It is safe for concurrent use.
type Book struct {
	mu       sync.Mutex
	entries  []string
	strategy string
	current  int
}

// NewBook reads an opening book with one position per line from the given
// file. Blank lines and lines starting with # are ignored. An empty file
// name returns a book with only the given default position.
func NewBook(name, strategy, fallback string) (*Book, error) {
	if name == "" {
		return &Book{entries: []string{fallback}, strategy: strategy}, nil
	}

	file, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	book := NewBookFromEntries(strings.Split(string(file), "\n"), strategy)
	if len(book.entries) == 0 {
		book.entries = []string{fallback}
	}

	return book, nil
}

// NewBookFromEntries returns a book with the given positions.
func NewBookFromEntries(entries []string, strategy string) *Book {
	book := &Book{strategy: strategy}
	for _, entry := range entries {
		entry = strings.Trim(entry, "\n\r\t ")
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}

		book.entries = append(book.entries, entry)
	}

	return book
}

// Len returns the number of positions in the book.
func (book *Book) Len() int {
	return len(book.entries)
}

// Next returns the current position and advances the book.
func (book *Book) Next() string {
	book.mu.Lock()
	defer book.mu.Unlock()

	if len(book.entries) == 0 {
		return ""
	}

	entry := book.entries[book.current]

	switch book.strategy {
	case "random":
		book.current = rand.Intn(len(book.entries))
	default:
		book.current = (book.current + 1) % len(book.entries)
	}

	return entry
}
