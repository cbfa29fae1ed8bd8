package domain

// Agent is an agent definition owned by the remote platform. The bridge
// never mutates agents; it only lists them and projects them into the
// discovery endpoints.
type Agent struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Model         string         `json:"model"`
	Instructions  string         `json:"instructions,omitempty"`
	CreatedAt     int64          `json:"created_at,omitempty"`
	Tools         []AgentTool    `json:"tools,omitempty"`
	ToolResources *ToolResources `json:"tool_resources,omitempty"`
}

// AgentTool is one entry of an agent's declared tool set.
type AgentTool struct {
	Type     string        `json:"type"`
	Function *FunctionSpec `json:"function,omitempty"`
}

// FunctionSpec describes a declared function tool.
type FunctionSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToolResources carries the resources attached to an agent's tools.
type ToolResources struct {
	FileSearch *FileSearchResources `json:"file_search,omitempty"`
}

// FileSearchResources lists the vector stores backing file search.
type FileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
}

// Tag renders the tool as a short display tag: "fn:<name>" for function
// tools, the bare tool type for everything else.
func (t AgentTool) Tag() string {
	if t.Type == "function" && t.Function != nil {
		return "fn:" + t.Function.Name
	}
	return t.Type
}

// VectorStoreIDs returns the vector store ids attached to the agent's file
// search tool, or an empty slice when none are configured.
func (a Agent) VectorStoreIDs() []string {
	if a.ToolResources == nil || a.ToolResources.FileSearch == nil {
		return []string{}
	}
	return a.ToolResources.FileSearch.VectorStoreIDs
}
