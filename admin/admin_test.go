package admin_test

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/database/dbtest"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

func TestRegistry(t *testing.T) {
	registry := admin.DefaultRegistry()

	all := registry.All()
	require.Len(t, all, 5)
	assert.Equal(t, admin.EntityPersonalInfo, all[0].Entity)

	info, ok := registry.Lookup(admin.EntityPersonalInfo)
	require.True(t, ok)
	assert.False(t, info.CanDelete)
	assert.True(t, info.Singleton)

	_, ok = registry.Lookup("users")
	assert.False(t, ok)
}

func TestSearchOptions(t *testing.T) {
	tests := []struct {
		name      string
		desc      admin.Descriptor
		query     string
		wantErr   bool
		assertion func(t *testing.T, opts database.SearchOptions)
	}{
		{
			name:  "term uses searchable columns",
			desc:  admin.ContactMessageDescriptor(),
			query: "q=jane",
			assertion: func(t *testing.T, opts database.SearchOptions) {
				assert.Equal(t, "jane", opts.Term)
				assert.Equal(t, []string{"name", "email", "subject", "message"}, opts.SearchColumns)
				assert.Equal(t, []string{"-created_at", "-id"}, opts.Order)
			},
		},
		{
			name:  "typed filters",
			desc:  admin.SkillDescriptor(),
			query: "category=backend&is_featured=true&proficiency_level=3&name=ignored",
			assertion: func(t *testing.T, opts database.SearchOptions) {
				assert.Equal(t, map[string]interface{}{
					"category":          "backend",
					"is_featured":       true,
					"proficiency_level": 3,
				}, opts.Filters)
			},
		},
		{
			name:  "skill link filter",
			desc:  admin.ProjectDescriptor(),
			query: "technologies=7",
			assertion: func(t *testing.T, opts database.SearchOptions) {
				require.Len(t, opts.Links, 1)
				assert.Equal(t, database.LinkFilter{
					Table: "project_technologies", OwnerKey: "project_id", TargetKey: "skill_id", TargetID: 7,
				}, opts.Links[0])
			},
		},
		{
			name:  "explicit ordering",
			desc:  admin.ProjectDescriptor(),
			query: "o=-title,display_order",
			assertion: func(t *testing.T, opts database.SearchOptions) {
				assert.Equal(t, []string{"-title", "display_order"}, opts.Order)
			},
		},
		{name: "unknown choice", desc: admin.SkillDescriptor(), query: "category=cooking", wantErr: true},
		{name: "bad bool", desc: admin.ContactMessageDescriptor(), query: "is_read=maybe", wantErr: true},
		{name: "ordering by unlisted column", desc: admin.ProjectDescriptor(), query: "o=detailed_description", wantErr: true},
		{name: "ordering by unknown column", desc: admin.ProjectDescriptor(), query: "o=password;drop", wantErr: true},
		{name: "negative limit", desc: admin.SkillDescriptor(), query: "limit=-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			opts, err := tt.desc.SearchOptions(values)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsBadRequest(err))
				return
			}
			require.NoError(t, err)
			tt.assertion(t, opts)
		})
	}
}

func TestDescriptorList(t *testing.T) {
	ctx := context.Background()
	db := database.New(dbtest.New(t), nil)

	goSkill := models.Skill{Name: "Go", Category: "backend"}
	require.NoError(t, db.SkillRepo().Add(ctx, &goSkill))
	for _, p := range []models.Project{
		{Title: "Alpha", ShortDescription: "first", IsPublished: true, Technologies: []models.Skill{{ID: goSkill.ID}}},
		{Title: "Beta", ShortDescription: "second", IsPublished: false},
	} {
		p := p
		require.NoError(t, db.ProjectRepo().Add(ctx, &p))
	}

	rows, err := admin.ProjectDescriptor().List(ctx, db, url.Values{"technologies": {strconv.FormatUint(uint64(goSkill.ID), 10)}})
	require.NoError(t, err)
	projects := *rows.(*[]models.Project)
	require.Len(t, projects, 1)
	assert.Equal(t, "Alpha", projects[0].Title)
	assert.Equal(t, []string{"Go"}, projects[0].TechnologyNames())

	rows, err = admin.ProjectDescriptor().List(ctx, db, url.Values{"is_published": {"false"}})
	require.NoError(t, err)
	projects = *rows.(*[]models.Project)
	require.Len(t, projects, 1)
	assert.Equal(t, "Beta", projects[0].Title)

	rows, err = admin.ProjectDescriptor().List(ctx, db, url.Values{"q": {"SECOND"}})
	require.NoError(t, err)
	projects = *rows.(*[]models.Project)
	require.Len(t, projects, 1)
	assert.Equal(t, "Beta", projects[0].Title)
}
