// Package services contains domain services that coordinate behavior across
// aggregates. DocumentGate decides whether a progress step may be completed
// based on the documents attached to the order, a rule that spans the Order
// and Document aggregates and therefore lives outside both.
package services
