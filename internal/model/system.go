package model

// Input is a message input configured on the server.
type Input struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Node  string `json:"node"`
}

// InputList is a snapshot of the inputs store.
type InputList struct {
	Inputs []Input
}

// Node is a server cluster node.
type Node struct {
	NodeID    string `json:"node_id"`
	Hostname  string `json:"hostname"`
	ShortID   string `json:"short_node_id"`
	IsMaster  bool   `json:"is_master"`
	Lifecycle string `json:"lifecycle"`
}

// NodeList is a snapshot of the nodes store.
type NodeList struct {
	Nodes []Node
}

// Stream is a message stream.
type Stream struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Disabled    bool   `json:"disabled"`
}

// StreamList is a snapshot of the streams store.
type StreamList struct {
	Streams []Stream
}

// View is the currently active search view.
type View struct {
	ID          string
	Title       string
	ActiveQuery string
}

// CurrentUser is the logged in user.
type CurrentUser struct {
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Timezone    string   `json:"timezone"`
	Permissions []string `json:"permissions"`
}

// FieldTypes is a snapshot of the field type registry.
type FieldTypes struct {
	Fields []FieldDescriptor
}

// SelectedFields is a snapshot of the selected fields store.
type SelectedFields struct {
	Fields []string
}
