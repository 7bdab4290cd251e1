package reduce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type renameAction struct {
	Name string `json:"name"`
}

func (a renameAction) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type birthdayAction struct{}

type scoreAction struct {
	Points int `json:"points"`
}

func (a *scoreAction) Validate() error {
	if a.Points < 0 {
		return errors.New("points must not be negative")
	}
	return nil
}

type legacyRename struct {
	NewName string `json:"new_name"`
}

type DecoderSuite struct {
	suite.Suite
	decoder *Decoder
}

func TestDecoderSuite(t *testing.T) {
	suite.Run(t, new(DecoderSuite))
}

func (s *DecoderSuite) SetupTest() {
	s.decoder = NewDecoder()
	RegisterAction[renameAction](s.decoder, "rename")
	RegisterAction[birthdayAction](s.decoder, "birthday")
	RegisterAction[scoreAction](s.decoder, "score")
	RegisterActionWhen[legacyRename](s.decoder, And(
		HasFields("new_name"),
		Not(HasFields("type")),
	))
}

func (s *DecoderSuite) TestDecodesKeyedPayload() {
	action, err := s.decoder.Decode([]byte(`{"type": "rename", "payload": {"name": "ada"}}`))

	s.Require().NoError(err)
	s.Assert().Equal(renameAction{Name: "ada"}, action)
}

func (s *DecoderSuite) TestMissingPayloadDecodesZeroValue() {
	action, err := s.decoder.Decode([]byte(`{"type": "birthday"}`))

	s.Require().NoError(err)
	s.Assert().Equal(birthdayAction{}, action)
}

func (s *DecoderSuite) TestNullPayloadDecodesZeroValue() {
	action, err := s.decoder.Decode([]byte(`{"type": "score", "payload": null}`))

	s.Require().NoError(err)
	s.Assert().Equal(scoreAction{}, action)
}

func (s *DecoderSuite) TestPointerActionsAreNeverNil() {
	RegisterAction[*renameAction](s.decoder, "rename-ref")
	RegisterAction[*birthdayAction](s.decoder, "birthday-ref")

	action, err := s.decoder.Decode([]byte(`{"type": "birthday-ref"}`))
	s.Require().NoError(err)
	s.Assert().Equal(&birthdayAction{}, action)

	action, err = s.decoder.Decode([]byte(`{"type": "birthday-ref", "payload": null}`))
	s.Require().NoError(err)
	s.Assert().Equal(&birthdayAction{}, action)

	action, err = s.decoder.Decode([]byte(`{"type": "rename-ref", "payload": {"name": "ada"}}`))
	s.Require().NoError(err)
	s.Assert().Equal(&renameAction{Name: "ada"}, action)

	_, err = s.decoder.Decode([]byte(`{"type": "rename-ref"}`))
	s.Assert().ErrorIs(err, ErrInvalidAction)
}

func (s *DecoderSuite) TestValidatesValueReceivers() {
	_, err := s.decoder.Decode([]byte(`{"type": "rename", "payload": {}}`))

	s.Assert().ErrorIs(err, ErrInvalidAction)
	s.Assert().ErrorContains(err, "name is required")
}

func (s *DecoderSuite) TestValidatesPointerReceivers() {
	_, err := s.decoder.Decode([]byte(`{"type": "score", "payload": {"points": -1}}`))

	s.Assert().ErrorIs(err, ErrInvalidAction)
}

func (s *DecoderSuite) TestReportsMalformedPayload() {
	_, err := s.decoder.Decode([]byte(`{"type": "score", "payload": {"points": "many"}}`))

	s.Require().Error(err)
	s.Assert().ErrorContains(err, "decode score action")
	s.Assert().NotErrorIs(err, ErrInvalidAction)
}

func (s *DecoderSuite) TestFallsBackToDiscriminators() {
	action, err := s.decoder.Decode([]byte(`{"new_name": "grace"}`))

	s.Require().NoError(err)
	s.Assert().Equal(legacyRename{NewName: "grace"}, action)
}

func (s *DecoderSuite) TestUnknownKey() {
	_, err := s.decoder.Decode([]byte(`{"type": "explode", "payload": {}}`))

	s.Assert().ErrorIs(err, ErrUnknownAction)
	s.Assert().ErrorContains(err, "explode")
}

func (s *DecoderSuite) TestUnrecognizedEnvelope() {
	_, err := s.decoder.Decode([]byte(`{"something": "else"}`))

	s.Assert().ErrorIs(err, ErrUnknownAction)
}

func (s *DecoderSuite) TestInvalidJSON() {
	_, err := s.decoder.Decode([]byte(`{"type": `))

	s.Assert().ErrorIs(err, ErrInvalidJSON)
}

func (s *DecoderSuite) TestDecodedActionsDispatch() {
	r := New[string]()
	On(r, func(_ string, a renameAction) string { return a.Name })
	On(r, func(_ string, a legacyRename) string { return "legacy:" + a.NewName })

	var actions []any
	for _, raw := range []string{
		`{"type": "rename", "payload": {"name": "ada"}}`,
		`{"type": "birthday"}`,
		`{"new_name": "grace"}`,
	} {
		action, err := s.decoder.Decode([]byte(raw))
		s.Require().NoError(err)
		actions = append(actions, action)
	}

	got, err := Fold[string](r, "", actions...)

	s.Require().NoError(err)
	s.Assert().Equal("legacy:grace", got)
}

func (s *DecoderSuite) TestCustomPaths() {
	d := NewDecoder(WithTypePath("meta.kind"), WithPayloadPath("data"), WithInspector(JSONInspector()))
	RegisterAction[renameAction](d, "rename")

	action, err := d.Decode([]byte(`{"meta": {"kind": "rename"}, "data": {"name": "ada"}}`))

	s.Require().NoError(err)
	s.Assert().Equal(renameAction{Name: "ada"}, action)
}
