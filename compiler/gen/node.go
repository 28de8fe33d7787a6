package gen

// File is one generated file of a node. Render produces its content into
// the emitter after the file was created.
type File struct {
	Name   string
	Render func(*Emitter) error
}

// Node is a generator node: the directory it descends into, the files it
// writes there in order, and the child nodes that run concurrently below
// it. An empty Dir writes into the parent directory.
//
// Siblings must target disjoint directories.
type Node struct {
	Name     string
	Dir      string
	Files    []File
	Children []*Node
}

// Add appends child nodes and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// AddFile appends a file and returns n.
func (n *Node) AddFile(name string, render func(*Emitter) error) *Node {
	n.Files = append(n.Files, File{Name: name, Render: render})
	return n
}

// Walk calls fn for n and every descendant, depth first, with the path of
// the node directory relative to the root of the walk.
func (n *Node) Walk(fn func(dir string, n *Node)) {
	n.walk("", fn)
}

func (n *Node) walk(parent string, fn func(string, *Node)) {
	dir := parent
	if n.Dir != "" {
		if dir != "" {
			dir += "/"
		}
		dir += n.Dir
	}
	fn(dir, n)
	for _, c := range n.Children {
		c.walk(dir, fn)
	}
}
