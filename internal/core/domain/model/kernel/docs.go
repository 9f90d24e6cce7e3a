// Package kernel contains shared value objects used across the domain model.
// It currently provides the UUID value object that identifies orders,
// documents, and status history records.
package kernel
