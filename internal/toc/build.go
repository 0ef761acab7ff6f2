package toc

// Options controls Build. The zero value uses the defaults.
type Options struct {
	ContainerID string
	IDPrefix    string

	// Replace clears the container before appending. Without it every
	// call appends another list.
	Replace bool
}

func (o Options) withDefaults() Options {
	if o.ContainerID == "" {
		o.ContainerID = DefaultContainerID
	}
	if o.IDPrefix == "" {
		o.IDPrefix = DefaultIDPrefix
	}
	return o
}

// Result reports what Build did. Tree is nil when nothing was rendered.
type Result struct {
	Rendered bool
	Tree     *Tree
}

// Build scans doc, attaches the rendered outline to the container and
// returns the outline. A document without the container is left untouched.
func Build(doc Document, opts Options) Result {
	opts = opts.withDefaults()

	c, ok := doc.Container(opts.ContainerID)
	if !ok {
		return Result{}
	}

	t := Extract(doc.Headings(), opts.IDPrefix)
	if opts.Replace {
		c.RemoveChildren()
	}
	c.AppendChild(Render(t))

	return Result{Rendered: true, Tree: t}
}
