// Package domain holds the value types that flow through an audit run.
package domain
