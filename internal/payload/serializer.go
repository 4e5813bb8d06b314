// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/tkarimov/casesync/models"
)

// XML namespaces of the response envelope and the case transaction blocks.
const (
	nsOpenRosaResponse = "http://openrosa.org/http/response"
	nsRegistration     = "http://openrosa.org/user/registration"
	nsSync             = "http://casesync.dev/sync"
	nsCaseV2           = "http://casesync.dev/case/transaction/v2"
)

// Response natures carried in the <message> element.
const (
	NatureSuccess  = "ota_restore_success"
	NatureError    = "ota_restore_error"
	NatureBadState = "ota_restore_bad_state"
)

// dateModifiedFormat is the timestamp layout of case date_modified values.
const dateModifiedFormat = "2006-01-02T15:04:05.000Z"

// ErrUnsupportedVersion is returned by [Render] for a version string that
// names no known wire format.
var ErrUnsupportedVersion = errors.New("unsupported payload version")

// Render writes the full restore response document for doc in the requested
// wire-format version. Cases are emitted sorted by case ID with sorted
// properties and index edges, so the same document always renders to the
// same bytes.
func Render(w io.Writer, doc *Document, version string) error {
	if !SupportedVersion(version) {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")

	root := start("OpenRosaResponse", attr("xmlns", nsOpenRosaResponse))
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	message := fmt.Sprintf("Successfully restored account %s!", doc.User.Username)
	if doc.Incremental {
		message = fmt.Sprintf("Successfully synchronized account %s!", doc.User.Username)
	}
	if err := textElem(enc, "message", message, attr("nature", NatureSuccess)); err != nil {
		return err
	}

	if err := renderSyncBlock(enc, doc.RestoreID); err != nil {
		return err
	}
	if err := renderRegistration(enc, doc.User); err != nil {
		return err
	}

	cases := make([]*models.Case, len(doc.Cases))
	copy(cases, doc.Cases)
	sort.Slice(cases, func(i, j int) bool { return cases[i].CaseID < cases[j].CaseID })

	for _, c := range cases {
		var err error
		switch version {
		case V1:
			err = renderCaseV1(enc, c)
		case V2:
			err = renderCaseV2(enc, c)
		}
		if err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

// RenderError writes a minimal response document carrying only an error
// message, used for failure responses that must still be parseable by the
// device.
func RenderError(w io.Writer, nature, message string) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")

	root := start("OpenRosaResponse", attr("xmlns", nsOpenRosaResponse))
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := textElem(enc, "message", message, attr("nature", nature)); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func renderSyncBlock(enc *xml.Encoder, restoreID string) error {
	sync := start("Sync", attr("xmlns", nsSync))
	if err := enc.EncodeToken(sync); err != nil {
		return err
	}
	if err := textElem(enc, "restore_id", restoreID); err != nil {
		return err
	}
	return enc.EncodeToken(sync.End())
}

func renderRegistration(enc *xml.Encoder, user models.RestoreUser) error {
	reg := start("Registration", attr("xmlns", nsRegistration))
	if err := enc.EncodeToken(reg); err != nil {
		return err
	}
	if err := textElem(enc, "username", user.Username); err != nil {
		return err
	}
	if err := textElem(enc, "uuid", user.UserID); err != nil {
		return err
	}
	return enc.EncodeToken(reg.End())
}

// renderCaseV2 writes the attribute-based case block: identity on the
// <case> element, then create, update, sorted index edges and the close
// marker.
func renderCaseV2(enc *xml.Encoder, c *models.Case) error {
	caseElem := start("case",
		attr("case_id", c.CaseID),
		attr("date_modified", c.ServerModifiedOn.UTC().Format(dateModifiedFormat)),
		attr("user_id", c.ModifiedBy),
		attr("xmlns", nsCaseV2),
	)
	if err := enc.EncodeToken(caseElem); err != nil {
		return err
	}

	create := start("create")
	if err := enc.EncodeToken(create); err != nil {
		return err
	}
	if err := textElem(enc, "case_type", c.Type); err != nil {
		return err
	}
	if err := textElem(enc, "case_name", c.Name); err != nil {
		return err
	}
	if err := textElem(enc, "owner_id", c.OwnerID); err != nil {
		return err
	}
	if err := enc.EncodeToken(create.End()); err != nil {
		return err
	}

	if len(c.Properties) > 0 {
		update := start("update")
		if err := enc.EncodeToken(update); err != nil {
			return err
		}
		for _, k := range sortedKeys(c.Properties) {
			if err := textElem(enc, k, c.Properties[k]); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(update.End()); err != nil {
			return err
		}
	}

	if len(c.Indices) > 0 {
		if err := renderIndices(enc, c.Indices); err != nil {
			return err
		}
	}

	if c.Closed {
		if err := textElem(enc, "close", ""); err != nil {
			return err
		}
	}

	return enc.EncodeToken(caseElem.End())
}

func renderIndices(enc *xml.Encoder, indices []models.CaseIndex) error {
	sorted := make([]models.CaseIndex, len(indices))
	copy(sorted, indices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Identifier < sorted[j].Identifier })

	index := start("index")
	if err := enc.EncodeToken(index); err != nil {
		return err
	}
	for _, idx := range sorted {
		if err := textElem(enc, idx.Identifier, idx.ReferencedID,
			attr("case_type", idx.ReferencedType),
			attr("relationship", string(idx.Relationship)),
		); err != nil {
			return err
		}
	}
	return enc.EncodeToken(index.End())
}

// renderCaseV1 writes the flat legacy case block. V1 devices know nothing
// about index edges, so those are omitted; closes survive as a bare marker.
func renderCaseV1(enc *xml.Encoder, c *models.Case) error {
	caseElem := start("case")
	if err := enc.EncodeToken(caseElem); err != nil {
		return err
	}

	if err := textElem(enc, "case_id", c.CaseID); err != nil {
		return err
	}
	if err := textElem(enc, "date_modified", c.ServerModifiedOn.UTC().Format(dateModifiedFormat)); err != nil {
		return err
	}

	create := start("create")
	if err := enc.EncodeToken(create); err != nil {
		return err
	}
	if err := textElem(enc, "case_type_id", c.Type); err != nil {
		return err
	}
	if err := textElem(enc, "case_name", c.Name); err != nil {
		return err
	}
	if err := textElem(enc, "user_id", c.OpenedBy); err != nil {
		return err
	}
	if err := enc.EncodeToken(create.End()); err != nil {
		return err
	}

	update := start("update")
	if err := enc.EncodeToken(update); err != nil {
		return err
	}
	if err := textElem(enc, "owner_id", c.OwnerID); err != nil {
		return err
	}
	for _, k := range sortedKeys(c.Properties) {
		if err := textElem(enc, k, c.Properties[k]); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(update.End()); err != nil {
		return err
	}

	if c.Closed {
		if err := textElem(enc, "close", ""); err != nil {
			return err
		}
	}

	return enc.EncodeToken(caseElem.End())
}

func start(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func textElem(enc *xml.Encoder, name, text string, attrs ...xml.Attr) error {
	elem := start(name, attrs...)
	if err := enc.EncodeToken(elem); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(elem.End())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
