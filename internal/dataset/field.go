package dataset

import "strings"

// Field identifies a canonical semantic column, independent of how the
// source spreadsheet names it.
type Field string

const (
	FieldTicketID         Field = "ticket_id"
	FieldPriority         Field = "priority"
	FieldSLAStatus        Field = "sla_status"
	FieldStatus           Field = "status"
	FieldCreationDate     Field = "creation_date"
	FieldClosedDate       Field = "closed_date"
	FieldStatusDate       Field = "status_date"
	FieldDepartment       Field = "department"
	FieldLineManager      Field = "line_manager"
	FieldAssignedOwner    Field = "assigned_owner"
	FieldNewAssignedOwner Field = "new_assigned_owner"
	FieldPluginID         Field = "plugin_id"
	FieldPluginDesc       Field = "plugin_desc"
	FieldTool             Field = "tool"
	FieldPort             Field = "port"
	FieldIP               Field = "ip"
	FieldDNS              Field = "dns"
	FieldSLATime          Field = "sla_time"
)

// FieldOrder fixes the enumeration order used by auto-mapping. When two
// fields' alias lists both match the same raw column, the earlier field
// claims it.
var FieldOrder = []Field{
	FieldTicketID,
	FieldPriority,
	FieldSLAStatus,
	FieldStatus,
	FieldCreationDate,
	FieldClosedDate,
	FieldStatusDate,
	FieldDepartment,
	FieldLineManager,
	FieldAssignedOwner,
	FieldNewAssignedOwner,
	FieldPluginID,
	FieldPluginDesc,
	FieldTool,
	FieldPort,
	FieldIP,
	FieldDNS,
	FieldSLATime,
}

// Aliases maps each canonical field to its accepted raw column spellings,
// in priority order. Matching is case-insensitive and whitespace-trimmed.
var Aliases = map[Field][]string{
	FieldTicketID:         {"TICKETID", "TICKET_ID", "Ticket ID", "ticket_id", "ID"},
	FieldPriority:         {"REPORTEDPRIORITY", "PRIORITY", "Priority", "priority", "Severity"},
	FieldSLAStatus:        {"SLA_Value", "SLA_STATUS", "SLA Status", "sla_status", "SLA"},
	FieldStatus:           {"STATUS", "Status", "status", "State"},
	FieldCreationDate:     {"Day_of_CREATIONDATE", "CREATIONDATE", "Creation Date", "creation_date", "Created"},
	FieldClosedDate:       {"Day_of_CLOSEDDATE", "CLOSEDDATE", "Closed Date", "closed_date", "Closed"},
	FieldStatusDate:       {"Day_of_STATUS/DATE", "STATUS_DATE", "Status Date", "status_date"},
	FieldDepartment:       {"Department", "DEPARTMENT", "department", "Dept"},
	FieldLineManager:      {"Line Manager (group)", "LINE_MANAGER", "Line Manager", "line_manager", "Manager"},
	FieldAssignedOwner:    {"ASSIGNEDOWNER/GROUP", "ASSIGNED_OWNER", "Assigned Owner", "assigned_owner", "Owner"},
	FieldNewAssignedOwner: {"NEW_ASSIGNEDOWNER/GROUP", "NEW_ASSIGNED_OWNER", "New Assigned Owner"},
	FieldPluginID:         {"PLUGINID", "PLUGIN_ID", "Plugin ID", "plugin_id", "PluginID"},
	FieldPluginDesc:       {"PLUGINDESC", "PLUGIN_DESC", "Plugin Description", "plugin_desc", "Vulnerability"},
	FieldTool:             {"TOOL", "Tool", "tool", "Source", "Scanner"},
	FieldPort:             {"PORT", "Port", "port"},
	FieldIP:               {"IP", "ip", "IP Address", "Host"},
	FieldDNS:              {"DNS", "dns", "Hostname", "FQDN"},
	FieldSLATime:          {"Negative_Value", "SLA_TIME", "SLA Time", "sla_time", "Days Overdue"},
}

// DateFields are the canonical fields whose raw columns are coerced to
// time values at load.
var DateFields = []Field{FieldCreationDate, FieldClosedDate, FieldStatusDate}

// OpenStatuses and ClosedStatuses partition status values into ticket
// categories. A value in neither set belongs to no category.
var (
	OpenStatuses   = []string{"PENDING", "QUEUED", "QUEUEDR", "WRISKACCPT"}
	ClosedStatuses = []string{"CLOSED", "CANCEL", "RISKACCPT", "CANCELLED"}
)

// IsField reports whether f is one of the canonical fields.
func IsField(f Field) bool {
	_, ok := Aliases[f]
	return ok
}

// IsOpenStatus reports whether a raw status value falls in the OPEN category.
func IsOpenStatus(value string) bool {
	return inStatusSet(value, OpenStatuses)
}

// IsClosedStatus reports whether a raw status value falls in the CLOSED category.
func IsClosedStatus(value string) bool {
	return inStatusSet(value, ClosedStatuses)
}

func inStatusSet(value string, set []string) bool {
	upper := strings.ToUpper(strings.TrimSpace(value))
	for _, s := range set {
		if upper == s {
			return true
		}
	}
	return false
}
