// Copyright 2024-2026 The Syster Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file defines the concurrency guard around fileManager's open-document
// map. A per-request reentrant lock pool with poisoning checks would be the
// usual move here, but the workspace this package wraps already serializes
// every mutation behind its own RWMutex (see workspace.go's doc comment), so
// the only state fileManager itself owns is the uri-to-path map, which a
// plain mutex protects without any reentrancy hazard.
package syslsp

import "sync"

// docStore is a concurrency-safe uri -> openDoc map.
type docStore struct {
	mu   sync.Mutex
	docs map[string]*openDoc
}

func newDocStore() *docStore {
	return &docStore{docs: make(map[string]*openDoc)}
}

func (s *docStore) get(uri string) (*openDoc, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[uri]
	return d, ok
}

func (s *docStore) put(uri string, d *openDoc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = d
}

func (s *docStore) delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}
