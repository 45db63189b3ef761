package types

// WorkerNode identifies an execution unit capable of hosting running user
// instances. The node itself is owned by the surrounding runner/transport
// layer; dispatchers only hold references and key their assignment maps by
// node ID.
type WorkerNode struct {
	// ID uniquely identifies the worker within a dispatcher instance.
	ID string `yaml:"id" json:"id"`

	// Host names the physical machine the worker process runs on. When set,
	// dispatchers spread load across hosts before spreading across workers
	// of the same host. Empty means the worker is its own host.
	Host string `yaml:"host,omitempty" json:"host,omitempty"`
}

// HostKey returns the host grouping key for the node. Workers without an
// explicit host are treated as sole occupants of their own host.
func (w WorkerNode) HostKey() string {
	if w.Host == "" {
		return w.ID
	}

	return w.Host
}
