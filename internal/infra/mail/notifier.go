package mail

import (
	"go.uber.org/zap"

	"github.com/danguerrag/go-leads-api/internal/config"
	"github.com/danguerrag/go-leads-api/internal/entity"
	"github.com/danguerrag/go-leads-api/internal/infra/http/middleware"
)

const newLeadSubject = "🎯 Nuevo Lead Recibido"

// ActivationState classifies the notifier once at construction. Disabled
// and Misconfigured behave identically (every notify is a no-op); they
// differ only in startup diagnostics.
type ActivationState string

const (
	StateDisabled      ActivationState = "disabled"
	StateMisconfigured ActivationState = "misconfigured"
	StateActive        ActivationState = "active"
)

// LeadNotifier renders and sends the new-lead email. All delivery errors
// stop here: NotifyNewLead has no return value by contract.
type LeadNotifier struct {
	Sender Sender

	state     ActivationState
	from      string
	recipient string
	logger    *zap.Logger
}

// NewLeadNotifier derives the activation state from the mail config, once.
// When active it constructs the SMTP sender that is reused for every
// subsequent notification.
func NewLeadNotifier(cfg config.MailConfig, logger *zap.Logger) *LeadNotifier {
	n := &LeadNotifier{
		from:      cfg.From,
		recipient: cfg.Recipient,
		logger:    logger,
	}
	if n.from == "" {
		n.from = cfg.User
	}

	if !cfg.Enabled {
		n.state = StateDisabled
		logger.Warn("email notifications are disabled, set EMAIL_ENABLED=true to enable them")
		return n
	}

	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		n.state = StateMisconfigured
		logger.Warn("email configuration is incomplete, email notifications will be disabled",
			zap.Bool("host_set", cfg.Host != ""),
			zap.Bool("user_set", cfg.User != ""),
			zap.Bool("password_set", cfg.Password != ""),
		)
		return n
	}

	n.state = StateActive
	n.Sender = NewSMTPSender(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	logger.Info("mail sender initialized",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("user", cfg.User),
	)
	return n
}

func (n *LeadNotifier) State() ActivationState {
	return n.state
}

// NotifyNewLead delivers the operator notification for a freshly created
// lead. It never fails the caller: every abort condition and delivery
// error ends in a log line and nothing else.
func (n *LeadNotifier) NotifyNewLead(lead *entity.Lead) {
	if n.state != StateActive || n.Sender == nil {
		n.logger.Debug("mail sender not configured, skipping lead notification",
			zap.String("lead_id", lead.ID))
		return
	}

	if n.recipient == "" {
		n.logger.Warn("NOTIFICATION_EMAIL not configured, cannot send lead notification",
			zap.String("lead_id", lead.ID))
		return
	}

	html, text, err := renderNewLead(lead)
	if err != nil {
		middleware.RecordNotificationError()
		n.logger.Error("failed to render lead notification",
			zap.String("lead_id", lead.ID),
			zap.Error(err))
		return
	}

	messageID, err := n.Sender.Send(Message{
		From:     n.from,
		To:       n.recipient,
		Subject:  newLeadSubject,
		HTMLBody: html,
		TextBody: text,
	})
	if err != nil {
		middleware.RecordNotificationError()
		n.logger.Error("failed to send lead notification",
			zap.String("lead_id", lead.ID),
			zap.Error(err),
			zap.Stack("stack"))
		return
	}

	middleware.RecordNotificationSent()
	n.logger.Info("lead notification sent",
		zap.String("lead_id", lead.ID),
		zap.String("message_id", messageID))
}
