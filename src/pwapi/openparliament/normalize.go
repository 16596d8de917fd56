package openparliament

import (
	"encoding/json"
	"fmt"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

// SchemaVersion identifies the upstream shape this normalizer understands.
// Bump when the upstream payload layout changes.
const SchemaVersion = 1

// text is a bilingual field that upstream serves either as a bare string or
// as an {en, fr} object, depending on the endpoint.
type text struct {
	En string
	Fr string
}

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.En = s
		return nil
	}
	var obj struct {
		En string `json:"en"`
		Fr string `json:"fr"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	t.En = obj.En
	t.Fr = obj.Fr
	return nil
}

// NormalizeVote maps a raw vote payload into a record. Unknown or missing
// fields produce warnings and a partially-filled record, never an error;
// only undecodable JSON fails.
func NormalizeVote(raw []byte) (*types.Vote, []string, error) {
	var in struct {
		URL         string `json:"url"`
		Session     string `json:"session"`
		Number      int    `json:"number"`
		Date        string `json:"date"`
		Result      string `json:"result"`
		YeaTotal    int    `json:"yea_total"`
		NayTotal    int    `json:"nay_total"`
		PairedTotal int    `json:"paired_total"`
		Description text   `json:"description"`
		BillURL     string `json:"bill_url"`
		BillNumber  string `json:"bill_number"`
		PartyVotes  []struct {
			Vote         string  `json:"vote"`
			Disagreement float64 `json:"disagreement"`
			Party        struct {
				ShortName text `json:"short_name"`
				Name      text `json:"name"`
			} `json:"party"`
		} `json:"party_votes"`
		Ballots []struct {
			PoliticianURL string `json:"politician_url"`
			Ballot        string `json:"ballot"`
		} `json:"ballots"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, nil, fmt.Errorf("normalize vote: %w", err)
	}

	var warnings []string
	if in.Number == 0 || in.Session == "" {
		warnings = append(warnings, "vote: missing number or session")
	}

	v := &types.Vote{
		Number:        in.Number,
		Session:       in.Session,
		Date:          in.Date,
		Result:        in.Result,
		YeaTotal:      in.YeaTotal,
		NayTotal:      in.NayTotal,
		PairedTotal:   in.PairedTotal,
		DescriptionEn: in.Description.En,
		DescriptionFr: in.Description.Fr,
		URL:           in.URL,
		BillURL:       in.BillURL,
		BillNumber:    in.BillNumber,
		Raw:           string(raw),
	}

	var parties []types.PartyVote
	for _, pv := range in.PartyVotes {
		// party short name first, full name as fallback
		name := pv.Party.ShortName.En
		if name == "" {
			name = pv.Party.Name.En
		}
		if name == "" {
			warnings = append(warnings, "vote: party tally with no party name")
		}
		parties = append(parties, types.PartyVote{
			Party:       name,
			Vote:        pv.Vote,
			DisagreePct: fmt.Sprintf("%.2f", pv.Disagreement),
		})
	}
	if s, err := types.MarshalList(parties); err == nil {
		v.PartyVotes = s
	}

	var ballots []types.Ballot
	for _, b := range in.Ballots {
		ballots = append(ballots, types.Ballot{PoliticianURL: b.PoliticianURL, Ballot: b.Ballot})
	}
	if s, err := types.MarshalList(ballots); err == nil {
		v.Ballots = s
	}

	// Totals are not enforced upstream; flag rather than reject.
	if len(ballots) > 0 && in.YeaTotal+in.NayTotal+in.PairedTotal != len(ballots) {
		warnings = append(warnings, fmt.Sprintf("vote %d/%s: totals %d do not match %d ballots",
			in.Number, in.Session, in.YeaTotal+in.NayTotal+in.PairedTotal, len(ballots)))
	}

	return v, warnings, nil
}

// NormalizeBill maps a raw bill payload into a record. Status is free text
// upstream; whatever shape arrives is preserved as a label.
func NormalizeBill(raw []byte) (*types.Bill, []string, error) {
	var in struct {
		URL          string `json:"url"`
		Session      string `json:"session"`
		Number       string `json:"number"`
		Introduced   string `json:"introduced"`
		Name         text   `json:"name"`
		ShortTitle   text   `json:"short_title"`
		LegisinfoID  int64  `json:"legisinfo_id"`
		Status       text   `json:"status"`
		SponsorURL   string `json:"sponsor_politician_url"`
		Summary      string `json:"summary_html"`
		TextURL      string `json:"text_url"`
		LawURL       string `json:"law_url"`
		StatusCode   string `json:"status_code"`
		Events       []struct {
			Date        string `json:"date"`
			Status      text   `json:"status"`
			Institution string `json:"institution"`
		} `json:"events"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, nil, fmt.Errorf("normalize bill: %w", err)
	}

	var warnings []string
	if in.Number == "" || in.Session == "" {
		warnings = append(warnings, "bill: missing number or session")
	}

	// status label fallback: status.en, then status_code, then "other"
	status := in.Status.En
	if status == "" {
		status = in.StatusCode
	}
	if status == "" {
		status = "other"
		warnings = append(warnings, fmt.Sprintf("bill %s/%s: no status label", in.Number, in.Session))
	}

	name := in.Name
	if name.En == "" && in.ShortTitle.En != "" {
		name = in.ShortTitle
	}

	b := &types.Bill{
		Number:         in.Number,
		Session:        in.Session,
		IntroducedDate: in.Introduced,
		NameEn:         name.En,
		NameFr:         name.Fr,
		LegisinfoID:    in.LegisinfoID,
		URL:            in.URL,
		Status:         status,
		SponsorURL:     in.SponsorURL,
		Summary:        in.Summary,
		TextURL:        in.TextURL,
		LawURL:         in.LawURL,
		Raw:            string(raw),
	}

	var events []types.BillEvent
	for _, e := range in.Events {
		events = append(events, types.BillEvent{Date: e.Date, Status: e.Status.En, Institution: e.Institution})
	}
	if s, err := types.MarshalList(events); err == nil {
		b.Events = s
	}

	return b, warnings, nil
}

// NormalizeMember maps a raw politician payload into a record. The upstream
// serves several historical shapes, so each field is resolved through a
// fixed fallback order:
//
//	party:   current_party.short_name.en > current_party.name.en > last membership party
//	riding:  current_riding.name.en > last membership riding
//	email:   email > other_info.email[0]
//	phone:   voice > other_info.phone[0]
//
// A shape matching none of the fallbacks yields a partially-filled record
// plus warnings; callers decide whether to log or reject.
func NormalizeMember(raw []byte) (*types.Member, []string, error) {
	type party struct {
		ShortName text `json:"short_name"`
		Name      text `json:"name"`
	}
	type riding struct {
		Name     text   `json:"name"`
		Province string `json:"province"`
	}
	var in struct {
		URL           string `json:"url"`
		Name          string `json:"name"`
		Image         string `json:"image"`
		Email         string `json:"email"`
		Voice         string `json:"voice"`
		CurrentParty  party  `json:"current_party"`
		CurrentRiding riding `json:"current_riding"`
		Memberships   []struct {
			Party  party  `json:"party"`
			Riding riding `json:"riding"`
			Label  text   `json:"label"`
		} `json:"memberships"`
		OtherInfo struct {
			Email               []string `json:"email"`
			Phone               []string `json:"phone"`
			ConstituencyOffices []string `json:"constituency_offices"`
		} `json:"other_info"`
		Related struct {
			BallotsURL string `json:"ballots_url"`
		} `json:"related"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, nil, fmt.Errorf("normalize member: %w", err)
	}

	var warnings []string
	if in.URL == "" {
		warnings = append(warnings, "member: missing source url")
	}

	partyName := in.CurrentParty.ShortName.En
	if partyName == "" {
		partyName = in.CurrentParty.Name.En
	}
	ridingName := in.CurrentRiding.Name.En
	province := in.CurrentRiding.Province
	if (partyName == "" || ridingName == "") && len(in.Memberships) > 0 {
		last := in.Memberships[len(in.Memberships)-1]
		if partyName == "" {
			partyName = last.Party.ShortName.En
			if partyName == "" {
				partyName = last.Party.Name.En
			}
		}
		if ridingName == "" {
			ridingName = last.Riding.Name.En
			province = last.Riding.Province
		}
	}
	if partyName == "" {
		warnings = append(warnings, fmt.Sprintf("member %s: no party resolved", in.URL))
	}
	if ridingName == "" {
		warnings = append(warnings, fmt.Sprintf("member %s: no constituency resolved", in.URL))
	}

	email := in.Email
	if email == "" && len(in.OtherInfo.Email) > 0 {
		email = in.OtherInfo.Email[0]
	}
	phone := in.Voice
	if phone == "" && len(in.OtherInfo.Phone) > 0 {
		phone = in.OtherInfo.Phone[0]
	}

	m := &types.Member{
		URL:          in.URL,
		Name:         in.Name,
		Party:        partyName,
		Constituency: ridingName,
		Province:     province,
		PhotoURL:     in.Image,
		Email:        email,
		Phone:        phone,
		Raw:          string(raw),
	}

	var roles []string
	for _, ms := range in.Memberships {
		if ms.Label.En != "" {
			roles = append(roles, ms.Label.En)
		}
	}
	if s, err := types.MarshalList(roles); err == nil {
		m.Roles = s
	}

	var offices []types.Office
	for _, addr := range in.OtherInfo.ConstituencyOffices {
		offices = append(offices, types.Office{Type: "constituency", Postal: addr})
	}
	if s, err := types.MarshalList(offices); err == nil {
		m.Offices = s
	}

	return m, warnings, nil
}
