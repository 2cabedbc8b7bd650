// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/rig"
)

// FromStash returns the rule for a serialized rule.
func FromStash(st rig.ConnectionRuleStash) (Rule, error) {
	switch st.Kind {
	case rig.RuleType:
		if st.Types == rig.ElementTypeNone {
			return nil, errors.New("rules: Type rule without types")
		}
		return &TypeRule{Types: st.Types}, nil
	case rig.RuleTag:
		if st.Tag == "" {
			return nil, errors.New("rules: Tag rule without tag")
		}
		return &TagRule{Tag: st.Tag, Default: st.Default}, nil
	case rig.RuleAnd:
		ch, err := FromStashes(st.Children)
		if err != nil {
			return nil, err
		}
		return &AndRule{Children: ch}, nil
	case rig.RuleOr:
		ch, err := FromStashes(st.Children)
		if err != nil {
			return nil, err
		}
		return &OrRule{Children: ch}, nil
	case rig.RuleChildOfPrimary:
		return &ChildOfPrimaryRule{}, nil
	}
	return nil, errors.Errorf("rules: unknown rule kind %q", st.Kind)
}

// FromStashes returns the rules for a list of serialized rules.
func FromStashes(sts []rig.ConnectionRuleStash) ([]Rule, error) {
	res := make([]Rule, 0, len(sts))
	for _, st := range sts {
		r, err := FromStash(st)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// FromConnector returns the rules of a connector as one [AndRule].
func FromConnector(settings *rig.ConnectorSettings) (*AndRule, error) {
	ch, err := FromStashes(settings.Rules)
	if err != nil {
		return nil, err
	}
	return &AndRule{Children: ch}, nil
}
