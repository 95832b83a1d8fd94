package workflow

import "github.com/dungvu242k3/XoXo-sub001/internal/model"

// Catalog indexes the service catalog for workflow lookup.
type Catalog map[string]model.ServiceDefinition

func NewCatalog(services []model.ServiceDefinition) Catalog {
	c := make(Catalog, len(services))
	for _, s := range services {
		c[s.ID] = s
	}
	return c
}

// ResolveWorkflowID picks the workflow for an item: its own workflow id if
// set, otherwise the first declared workflow of its catalog service,
// otherwise empty (the item stays out of workflow-progress display but still
// takes part in order CRUD). The line-item table does not always carry the
// linkage, which is why order loading reconciles it client-side.
func (c Catalog) ResolveWorkflowID(item model.OrderItem) string {
	if item.WorkflowID != "" {
		return item.WorkflowID
	}
	if svc, ok := c[item.ServiceID]; ok && len(svc.WorkflowIDs) > 0 {
		return svc.WorkflowIDs[0]
	}
	return ""
}
