// Package organize turns the flat folder list into the navigable
// hierarchy and hosts the move workflow that reassigns notes between
// folders.
package organize

import (
	"strings"

	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/store"
)

const breadcrumbSeparator = " / "

// TreeNode is one folder in the rendered hierarchy.
type TreeNode struct {
	Folder     domain.Folder `json:"folder"`
	Breadcrumb string        `json:"breadcrumb"`
	Depth      int           `json:"depth"`
	ChildCount int           `json:"child_count"`
	NoteCount  int           `json:"note_count"`
	Children   []TreeNode    `json:"children,omitempty"`
}

type Service struct {
	folders *store.FolderStore
	notes   *store.NoteStore
}

func NewService(folders *store.FolderStore, notes *store.NoteStore) *Service {
	return &Service{folders: folders, notes: notes}
}

// Tree builds the full hierarchy starting at the root level. The
// recursion only follows parent links downward via Subfolders, so it
// terminates on any forest the stores can produce (cycles are rejected
// at write time).
func (s *Service) Tree() []TreeNode {
	return s.subtree(nil, 0)
}

func (s *Service) subtree(parentID *string, depth int) []TreeNode {
	children := s.folders.Subfolders(parentID)
	nodes := make([]TreeNode, 0, len(children))
	for _, f := range children {
		nodes = append(nodes, TreeNode{
			Folder:     f,
			Breadcrumb: s.breadcrumb(f.ID),
			Depth:      depth,
			ChildCount: len(s.folders.Subfolders(&f.ID)),
			NoteCount:  len(s.notes.ByFolder(&f.ID)),
			Children:   s.subtree(&f.ID, depth+1),
		})
	}
	return nodes
}

// breadcrumb joins the ancestor names of a folder, excluding the
// folder itself. Root-level folders get an empty breadcrumb.
func (s *Service) breadcrumb(folderID string) string {
	path, ok := s.folders.Path(folderID)
	if !ok || len(path) < 2 {
		return ""
	}
	names := make([]string, 0, len(path)-1)
	for _, f := range path[:len(path)-1] {
		names = append(names, f.Name)
	}
	return strings.Join(names, breadcrumbSeparator)
}
