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

package workspace

// DependencyGraph tracks file-level "imports from" edges, derived from
// each file's import statements once they've been resolved to the file
// that declares the imported package. It exists separately from the
// symbol-level relationship graphs because invalidation cascades at file
// granularity: re-populating a.sysml needs to know which other files
// might now see a different answer, not which specific symbols changed.
type DependencyGraph struct {
	// dependsOn[file] is the set of files that file imports from.
	dependsOn map[string]map[string]bool
	// dependents[file] is the set of files that import from file — the
	// reverse index GetDependents walks.
	dependents map[string]map[string]bool
}

// NewDependencyGraph constructs an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		dependsOn:  make(map[string]map[string]bool),
		dependents: make(map[string]map[string]bool),
	}
}

// AddDependency records that file imports from dependsOnFile.
func (d *DependencyGraph) AddDependency(file, dependsOnFile string) {
	if file == dependsOnFile {
		return
	}
	if d.dependsOn[file] == nil {
		d.dependsOn[file] = make(map[string]bool)
	}
	d.dependsOn[file][dependsOnFile] = true
	if d.dependents[dependsOnFile] == nil {
		d.dependents[dependsOnFile] = make(map[string]bool)
	}
	d.dependents[dependsOnFile][file] = true
}

// RemoveFile drops file's outgoing and incoming edges — called before a
// file is re-populated, so stale import edges from its previous contents
// don't linger.
func (d *DependencyGraph) RemoveFile(file string) {
	for dep := range d.dependsOn[file] {
		delete(d.dependents[dep], file)
	}
	delete(d.dependsOn, file)
	for dependent := range d.dependents[file] {
		delete(d.dependsOn[dependent], file)
	}
	delete(d.dependents, file)
}

// RemoveDependenciesOf drops only file's outgoing edges — the imports its
// previous contents declared — while keeping incoming edges intact. This is
// the update-path variant of RemoveFile: other files still import from file
// after its content changes, and forgetting that would break the
// invalidation cascade their staleness depends on.
func (d *DependencyGraph) RemoveDependenciesOf(file string) {
	for dep := range d.dependsOn[file] {
		delete(d.dependents[dep], file)
		if len(d.dependents[dep]) == 0 {
			delete(d.dependents, dep)
		}
	}
	delete(d.dependsOn, file)
}

// GetDependents returns every file that directly imports from file.
func (d *DependencyGraph) GetDependents(file string) []string {
	deps := d.dependents[file]
	out := make([]string, 0, len(deps))
	for f := range deps {
		out = append(out, f)
	}
	return out
}

// TransitiveDependents returns every file reachable by following
// GetDependents edges from file, cycle-tolerant, excluding file itself.
func (d *DependencyGraph) TransitiveDependents(file string) []string {
	visited := make(map[string]bool)
	var out []string
	var visit func(f string)
	visit = func(f string) {
		for _, dep := range d.GetDependents(f) {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			out = append(out, dep)
			visit(dep)
		}
	}
	visit(file)
	return out
}
