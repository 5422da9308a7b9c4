// Package zapevents implements promptman.Events on top of a zap.Logger.
package zapevents
