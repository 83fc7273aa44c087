// Package page renders the two screens the kids see: the practice
// screen and the card album. All live data arrives over the API, so the
// pages themselves are static shells.
package page

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func layout(title, body, script string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`+title+`</title>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
<nav>
  <a href="/" class="brand">wildkin</a>
  <a href="/album">album</a>
</nav>
`+body+`
<script src="/static/js/`+script+`"></script>
</body>
</html>
`); err != nil {
			return err
		}
		return nil
	})
}

// HomePage is the practice screen: the math drill, the reading drill,
// and the reward area with the generate button.
func HomePage() templ.Component {
	return layout("wildkin", `
<main id="home">
  <section id="reward-bar">
    <div id="progress">
      <span id="progress-count">0</span> correct
      <span id="progress-next"></span>
    </div>
    <div id="tokens"></div>
    <button id="generate" hidden>open a card!</button>
  </section>

  <section id="reward-banner" hidden>
    <div class="banner-text">You earned a card token!</div>
    <button id="ack">yay!</button>
  </section>

  <section id="card-reveal" hidden>
    <div id="reveal-card" class="card"></div>
    <button id="commit">keep it</button>
  </section>

  <section id="games">
    <div id="math-game" class="game">
      <h2>math</h2>
      <div id="math-levels"></div>
      <div id="math-prompt" class="prompt"></div>
      <input id="math-answer" type="number" inputmode="numeric" autocomplete="off">
      <button id="math-submit">check</button>
      <div id="math-feedback" class="feedback"></div>
    </div>

    <div id="reading-game" class="game">
      <h2>reading</h2>
      <div id="reading-rows" class="prompt"></div>
      <button id="reading-mic">read it aloud</button>
      <div id="reading-feedback" class="feedback"></div>
      <button id="reading-next">another one</button>
    </div>
  </section>
</main>
`, "home.js")
}

// AlbumPage shows every committed card in the order they were earned.
func AlbumPage() templ.Component {
	return layout("wildkin album", `
<main id="album">
  <h1>my cards</h1>
  <div id="album-grid"></div>
  <div id="album-empty" hidden>No cards yet. Answer questions to earn some!</div>
</main>
`, "album.js")
}
