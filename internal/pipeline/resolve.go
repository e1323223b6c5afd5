package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/curriculum-curator/internal/curriculum"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/ranking"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// shortTitleChars is the longest title used verbatim as a keyword-ranked video query.
const shortTitleChars = 30

// ResolveSections builds one SectionResources per input section, in input order. Sections are
// resolved concurrently and a provider failure for one section only empties that part of it.
func (p *Pipeline) ResolveSections(ctx context.Context, sections []types.ExtractedSection) ([]types.SectionResources, error) {
	results := make([]types.SectionResources, len(sections))

	g := new(errgroup.Group)
	g.SetLimit(orDefault(p.Concurrency, DefaultConcurrency))
	for i := range sections {
		g.Go(func() error {
			results[i] = p.resolveSection(ctx, &sections[i])
			p.emit(StepResolve, fmt.Sprintf("Resolved resources for %q", sections[i].Title), sections[i].ID, nil)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) resolveSection(ctx context.Context, section *types.ExtractedSection) types.SectionResources {
	log := p.log().With("section_id", section.ID)

	return types.SectionResources{
		SectionID: section.ID,
		Videos:    p.sectionVideos(ctx, section, log),
		Articles:  p.sectionArticles(ctx, section, log),
		Theory:    curriculum.BuildTheory(section),
		Summary:   curriculum.BuildSummary(section),
	}
}

func (p *Pipeline) sectionVideos(ctx context.Context, section *types.ExtractedSection, log *observability.Logger) []types.LearningResource {
	limit := orDefault(p.MaxVideos, DefaultMaxVideos)

	if p.Matcher != nil {
		videos, err := p.Matcher.Match(ctx, section)
		if err != nil {
			log.Warn("video matching failed", "error", err)
			return []types.LearningResource{}
		}
		return ranking.Top(videos, limit)
	}

	if p.Videos == nil {
		return []types.LearningResource{}
	}
	videos, err := p.Videos.SearchVideos(ctx, keywordQuery(section), limit)
	if err != nil {
		log.Warn("video search failed", "error", err)
		return []types.LearningResource{}
	}
	return ranking.Top(ranking.RankResources(videos, p.weights(), section.Keywords), limit)
}

func (p *Pipeline) sectionArticles(ctx context.Context, section *types.ExtractedSection, log *observability.Logger) []types.LearningResource {
	if p.Articles == nil || len(section.Keywords) == 0 {
		return nil
	}
	limit := orDefault(p.MaxArticles, DefaultMaxArticles)

	articles, err := p.Articles.Search(ctx, section.Keywords, limit*2)
	if err != nil {
		log.Warn("article search failed", "error", err)
		return nil
	}
	return ranking.Top(ranking.RankResources(articles, p.weights(), section.Keywords), limit)
}

// keywordQuery uses the title when it is short and the top keywords otherwise.
func keywordQuery(section *types.ExtractedSection) string {
	if len([]rune(section.Title)) <= shortTitleChars || len(section.Keywords) == 0 {
		return section.Title
	}
	return strings.Join(section.Keywords[:min(3, len(section.Keywords))], " ")
}
