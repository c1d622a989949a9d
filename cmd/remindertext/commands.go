package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
)

// appointmentFlags are shared by every generator command.
type appointmentFlags struct {
	business string
	customer string
	service  string
	date     string
	time     string
}

func (f *appointmentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.business, "business", "", "Business name")
	cmd.Flags().StringVar(&f.customer, "customer", "", "Customer name")
	cmd.Flags().StringVar(&f.service, "service", "", "Service name")
	cmd.Flags().StringVar(&f.date, "date", "", "Appointment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.time, "time", "", "Appointment time (HH:MM, 24h)")
}

func parseIndustry(raw string) industry.Key {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return industry.Parse(raw)
}

func smsCmd(opts *rootOptions) *cobra.Command {
	var (
		appt    appointmentFlags
		msgType string
	)
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Print the three SMS options for a message type",
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, ok := templates.ParseMessageType(msgType)
			if !ok {
				return fmt.Errorf("unknown message type %q", msgType)
			}
			in := templates.SMSInput{
				BusinessName: appt.business,
				CustomerName: appt.customer,
				ServiceName:  appt.service,
				Date:         appt.date,
				Time:         appt.time,
				MessageType:  mt,
			}
			d, err := opts.defaults()
			if err != nil {
				return err
			}
			if d != nil {
				d.ApplySMS(&in)
			}

			out := cmd.OutOrStdout()
			for i, text := range templates.GenerateSMSTemplates(in) {
				info := templates.Segments(text)
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "Option %d (%d chars, %d segment(s)):\n%s\n", i+1, info.Characters, info.Segments, text)
			}
			return nil
		},
	}
	appt.register(cmd)
	cmd.Flags().StringVar(&msgType, "type", string(templates.MessageConfirmation), "confirmation|day_before|same_day|reschedule|no_show")
	return cmd
}

func reminderCmd(opts *rootOptions) *cobra.Command {
	var (
		appt         appointmentFlags
		channel      string
		tone         string
		industryFlag string
	)
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Print a reminder for one channel and tone",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := templates.ReminderInput{
				BusinessName: appt.business,
				CustomerName: appt.customer,
				ServiceName:  appt.service,
				Date:         appt.date,
				Time:         appt.time,
				Industry:     parseIndustry(industryFlag),
			}
			if channel != "" {
				c, ok := templates.ParseChannel(channel)
				if !ok {
					return fmt.Errorf("unknown channel %q", channel)
				}
				in.Channel = c
			}
			if tone != "" {
				t, ok := templates.ParseTone(tone)
				if !ok {
					return fmt.Errorf("unknown tone %q", tone)
				}
				in.Tone = t
			}
			d, err := opts.defaults()
			if err != nil {
				return err
			}
			if d != nil {
				d.ApplyReminder(&in)
			}
			if in.Channel == "" {
				in.Channel = templates.ChannelSMS
			}
			if in.Tone == "" {
				in.Tone = templates.ToneFriendly
			}

			fmt.Fprintln(cmd.OutOrStdout(), templates.GenerateTemplate(in))
			return nil
		},
	}
	appt.register(cmd)
	cmd.Flags().StringVar(&channel, "channel", "", "sms|email|phone (default sms)")
	cmd.Flags().StringVar(&tone, "tone", "", "professional|friendly|casual (default friendly)")
	cmd.Flags().StringVar(&industryFlag, "industry", "", "Industry key")
	return cmd
}

func cardCmd(opts *rootOptions) *cobra.Command {
	var (
		appt         appointmentFlags
		industryFlag string
		phone        string
		address      string
		notice       string
	)
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Print a printable reminder card",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := templates.CardInput{
				BusinessName: appt.business,
				CustomerName: appt.customer,
				ServiceName:  appt.service,
				Date:         appt.date,
				Time:         appt.time,
				Industry:     parseIndustry(industryFlag),
				Phone:        phone,
				Address:      address,
			}
			if notice != "" {
				n, ok := templates.ParseNoticePeriod(notice)
				if !ok {
					return fmt.Errorf("unknown notice period %q", notice)
				}
				in.NoticePeriod = n
			}
			d, err := opts.defaults()
			if err != nil {
				return err
			}
			if d != nil {
				d.ApplyCard(&in)
			}

			fmt.Fprintln(cmd.OutOrStdout(), templates.GenerateCardText(in))
			return nil
		},
	}
	appt.register(cmd)
	cmd.Flags().StringVar(&industryFlag, "industry", "", "Industry key")
	cmd.Flags().StringVar(&phone, "phone", "", "Business phone shown on the card")
	cmd.Flags().StringVar(&address, "address", "", "Business address shown on the card")
	cmd.Flags().StringVar(&notice, "notice", "", "24h|48h|72h")
	return cmd
}

func policyCmd(opts *rootOptions) *cobra.Command {
	var (
		business        string
		industryFlag    string
		phone           string
		notice          string
		cancelFee       string
		cancelFeeCustom string
		noShowFee       string
		noShowFeeCustom string
		style           string
		lateArrival     bool
	)
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print a cancellation and no-show policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := templates.PolicyInput{
				BusinessName:          business,
				Industry:              parseIndustry(industryFlag),
				Phone:                 phone,
				CancellationFeeCustom: cancelFeeCustom,
				NoShowFeeCustom:       noShowFeeCustom,
				IncludeLateArrival:    lateArrival,
			}
			var err error
			if in.NoticePeriod, err = parseOptional(notice, "notice period", templates.ParseNoticePeriod); err != nil {
				return err
			}
			if in.CancellationFee, err = parseOptional(cancelFee, "cancellation fee", templates.ParseFeeOption); err != nil {
				return err
			}
			if in.NoShowFee, err = parseOptional(noShowFee, "no-show fee", templates.ParseFeeOption); err != nil {
				return err
			}
			if in.PolicyStyle, err = parseOptional(style, "policy style", templates.ParsePolicyStyle); err != nil {
				return err
			}

			d, err := opts.defaults()
			if err != nil {
				return err
			}
			if d != nil {
				d.ApplyPolicy(&in)
				if !cmd.Flags().Changed("late-arrival") {
					in.IncludeLateArrival = d.IncludeLateArrival
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), templates.GeneratePolicy(in))
			return nil
		},
	}
	cmd.Flags().StringVar(&business, "business", "", "Business name")
	cmd.Flags().StringVar(&industryFlag, "industry", "", "Industry key")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone shown in the how-to-cancel section")
	cmd.Flags().StringVar(&notice, "notice", "", "24h|48h|72h")
	cmd.Flags().StringVar(&cancelFee, "cancellation-fee", "", "none|25|50|full|custom")
	cmd.Flags().StringVar(&cancelFeeCustom, "cancellation-fee-custom", "", "Custom cancellation amount")
	cmd.Flags().StringVar(&noShowFee, "no-show-fee", "", "none|25|50|full|custom")
	cmd.Flags().StringVar(&noShowFeeCustom, "no-show-fee-custom", "", "Custom no-show amount")
	cmd.Flags().StringVar(&style, "style", "", "lenient|standard|strict")
	cmd.Flags().BoolVar(&lateArrival, "late-arrival", true, "Include the late arrival section")
	return cmd
}

func parseOptional[T ~string](raw, what string, parse func(string) (T, bool)) (T, error) {
	if raw == "" {
		return "", nil
	}
	v, ok := parse(raw)
	if !ok {
		return "", fmt.Errorf("unknown %s %q", what, raw)
	}
	return v, nil
}

func validatePhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-phone <number>",
		Short: "Validate a phone number and print its display and API forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := validation.ValidatePhone(args[0])
			if !res.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid:", res.Error)
				return errInvalid
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "valid")
			fmt.Fprintln(out, "display:", validation.FormatPhoneForDisplay(args[0]))
			fmt.Fprintln(out, "api:", validation.FormatPhoneForAPI(args[0]))
			return nil
		},
	}
}

func validateEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-email <address>",
		Short: "Validate an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := validation.ValidateEmail(args[0])
			if !res.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid:", res.Error)
				return errInvalid
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}
