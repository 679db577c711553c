// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records every admin mutation of the portal's stores, so bulk
// edits of the history can be reconstructed after the fact.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogOutcomeAppended logs a single outcome record being added.
func (al *AuditLogger) LogOutcomeAppended(recordID string, drawnAt time.Time, result string) {
	al.WithFields(logrus.Fields{
		"record_id": recordID,
		"drawn_at":  drawnAt.Format(time.RFC3339),
		"result":    result,
	}).Info("Outcome record appended")
}

// LogHistoryReplaced logs a bulk replace of the outcome history.
func (al *AuditLogger) LogHistoryReplaced(oldCount, newCount int) {
	al.WithFields(logrus.Fields{
		"old_count": oldCount,
		"new_count": newCount,
	}).Info("Outcome history replaced")
}

// LogUpdateAppended logs a changelog entry being added.
func (al *AuditLogger) LogUpdateAppended(entryID string, date time.Time) {
	al.WithFields(logrus.Fields{
		"entry_id": entryID,
		"date":     date.Format("2006-01-02"),
	}).Info("Update entry appended")
}

// LogUpdatesReplaced logs a bulk replace of the changelog.
func (al *AuditLogger) LogUpdatesReplaced(oldCount, newCount int) {
	al.WithFields(logrus.Fields{
		"old_count": oldCount,
		"new_count": newCount,
	}).Info("Update history replaced")
}

// LogCommentSaved logs the admin comment being overwritten.
func (al *AuditLogger) LogCommentSaved(length int) {
	al.WithField("length", length).Info("Admin comment saved")
}

// LogFeedImport logs a results feed import run.
func (al *AuditLogger) LogFeedImport(fetched, merged int, err error) {
	fields := logrus.Fields{
		"fetched": fetched,
		"merged":  merged,
	}
	if err != nil {
		al.WithFields(fields).WithError(err).Warn("Feed import failed")
		return
	}
	al.WithFields(fields).Info("Feed import completed")
}
