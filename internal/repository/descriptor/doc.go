// Package descriptor loads the version descriptor file (usually version.json).
package descriptor
