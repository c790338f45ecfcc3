// internal/adapter/insight/prompts.go

package insight

import "fmt"

func systemPrompt(focusBrand string) string {
	return fmt.Sprintf(`You are a senior marketing analyst for %[1]s, a smart/BLDC fan brand.
You are given quantitative Share of Voice (SoV) metrics from YouTube search
results for smart-fan-related keywords.

Your job:
1. Explain what the numbers say about %[1]s vs competitors.
2. Highlight where %[1]s is strong vs weak (content, engagement, comments, sentiment).
3. Use the per-keyword breakdown to identify which search intents %[1]s is winning or losing.
4. Suggest 4-6 concrete content & marketing actions %[1]s should take,
   including at least one related to smart home / WiFi positioning.`, focusBrand)
}

func userPrompt(metricsJSON string) string {
	return fmt.Sprintf(`Here are the computed metrics as JSON:

%s

Fields:
- posts_with_brand: number of videos mentioning the brand in title/description
- sov_content: share of videos mentioning the brand vs other brands
- sov_engagement: share of engagement (views + 10*likes + 20*comments)
- sov_comments: share of comment-level brand mentions
- share_of_positive_voice: share of positive sentiment in comments among all brands

Please:
- Summarize the focus brand's position vs each key competitor.
- Call out differences between keywords (e.g., stronger on "BLDC fan" vs "smart ceiling fan").
- Give specific recommendations for YouTube content and broader digital marketing.`, metricsJSON)
}
