package smartlead

// Lead is one campaign recipient in the platform's upload shape.
type Lead struct {
	FirstName    string           `json:"first_name"`
	Email        string           `json:"email"`
	Website      string           `json:"website"`
	CustomFields LeadCustomFields `json:"custom_fields"`
}

// LeadCustomFields carries the per-recipient values the sequence
// templates' merge fields resolve to at send time. Field casing follows
// the template vocabulary, not Go convention.
type LeadCustomFields struct {
	MerchantName  string `json:"merchant_name"`
	SPSelection   string `json:"SP_Selection"`
	Title         string `json:"Title"`
	Country       string `json:"country"`
	App           string `json:"app"`
	CountryName   string `json:"country_name"`
	FirstTemplate string `json:"first_template"`
}

// LeadSettings controls suppression-list and duplicate handling when
// uploading leads.
type LeadSettings struct {
	IgnoreGlobalBlockList               bool `json:"ignore_global_block_list"`
	IgnoreUnsubscribeList               bool `json:"ignore_unsubscribe_list"`
	IgnoreDuplicateLeadsInOtherCampaign bool `json:"ignore_duplicate_leads_in_other_campaign"`
}

// DefaultLeadSettings skips the global block and unsubscribe lists but
// still rejects leads already active in another campaign.
func DefaultLeadSettings() LeadSettings {
	return LeadSettings{
		IgnoreGlobalBlockList: true,
		IgnoreUnsubscribeList: true,
	}
}

// EmailAccount is one sending mailbox registered on the platform.
type EmailAccount struct {
	ID        int    `json:"id"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
}

// CampaignSettings is the unsubscribe and stop behavior applied to a
// campaign after creation.
type CampaignSettings struct {
	UnsubscribeText             string `json:"unsubscribe_text"`
	StopLeadSettings            string `json:"stop_lead_settings"`
	AutoPauseDomainLeadsOnReply bool   `json:"auto_pause_domain_leads_on_reply"`
}

// DefaultCampaignSettings returns the settings every campaign has been
// launched with so far: stop on reply, pause the domain's other leads,
// and the standard opt-out line.
func DefaultCampaignSettings() CampaignSettings {
	return CampaignSettings{
		UnsubscribeText:             "Click here to opt out of this email, or reply 'Not interested' to be removed from our list",
		StopLeadSettings:            "REPLY_TO_AN_EMAIL",
		AutoPauseDomainLeadsOnReply: true,
	}
}

// Schedule is the sending-window payload. The client passes it through
// without interpreting the fields; what the values mean is between the
// operator's config and the platform.
type Schedule struct {
	Timezone          string `json:"timezone"`
	DaysOfTheWeek     []int  `json:"days_of_the_week"`
	StartHour         string `json:"start_hour"`
	EndHour           string `json:"end_hour"`
	MinTimeBtwEmails  int    `json:"min_time_btw_emails"`
	MaxNewLeadsPerDay int    `json:"max_new_leads_per_day"`
	ScheduleStartTime string `json:"schedule_start_time"`
}
