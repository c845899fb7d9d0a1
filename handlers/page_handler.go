package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the single-page checker UI
type PageHandler struct{}

// NewPageHandler creates a new page handler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>📰 AI-Powered Fake News Detector</title>
<style>
  body { font-family: sans-serif; max-width: 960px; margin: 24px auto; padding: 0 16px; }
  .about { background-color: #dbeafe; color: #1e3a8a; padding: 15px; border-radius: 10px; border: 1px solid #93c5fd; }
  .columns { display: flex; gap: 24px; margin-top: 16px; }
  .input-col { flex: 2.2; }
  .result-col { flex: 1.3; }
  textarea { width: 100%; height: 300px; }
  .verdict { padding: 12px; border-radius: 10px; text-align: center; border: 2px solid #ccc; font-size: 24px; font-weight: bold; }
  .verdict.real { background-color: #d4edda; color: green; }
  .verdict.fake { background-color: #f8d7da; color: red; }
  .verdict.idle { background-color: #e0e0e0; color: #333; font-size: 18px; }
  .reasoning { padding: 10px; border-radius: 10px; border: 2px solid #ccc; margin-top: 8px; white-space: pre-wrap; }
  .reasoning.real { background-color: #e6f9e6; }
  .reasoning.fake { background-color: #ffe6e6; }
  .source { font-style: italic; font-size: 13px; color: #555; margin: 0 0 6px 0; }
  .warning { background-color: #fef3c7; color: #854d0e; padding: 6px; border-radius: 10px; border: 1px solid #fde68a; margin-top: 8px; }
</style>
</head>
<body>
<h1>📰 AI-Powered Fake News Detector for Students</h1>
<div class="about">
  <h4 style="margin:0;">🛠️ About This Tool</h4>
  <p style="margin:5px 0 0 0;">Enter a news article on the left, and the tool provides a
  <strong>clear verdict</strong> (REAL or FAKE) with <strong>dynamic AI reasoning</strong>.</p>
</div>
<div class="columns">
  <div class="input-col">
    <label for="article">📝 Enter News Article Here:</label><br>
    <textarea id="article"></textarea><br>
    <button id="check">🔍 Check News</button>
    <div id="message"></div>
  </div>
  <div class="result-col">
    <h3>🏷️ Verdict &amp; AI Reasoning</h3>
    <div id="verdict" class="verdict idle">ℹ️ Awaiting Input</div>
    <div id="reasoning"></div>
    <div class="warning"><strong>💡 Tip:</strong> AI explanations are helpful, but always check sources and think critically.</div>
  </div>
</div>
<script>
document.getElementById('check').addEventListener('click', async () => {
  const article = document.getElementById('article').value;
  const message = document.getElementById('message');
  const verdict = document.getElementById('verdict');
  const reasoning = document.getElementById('reasoning');
  message.innerHTML = '';

  if (!article.trim()) {
    message.innerHTML = '<div class="warning">⚠️ Please enter a news article to analyze.</div>';
    return;
  }

  verdict.className = 'verdict idle';
  verdict.textContent = '⏳ Analyzing...';
  reasoning.innerHTML = '';

  const resp = await fetch('/api/analyses', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({article})
  });
  const body = await resp.json();
  if (!body.success) {
    verdict.className = 'verdict idle';
    verdict.textContent = 'ℹ️ Awaiting Input';
    message.innerHTML = '<div class="warning">⚠️ ' + body.error.message + '</div>';
    return;
  }

  const a = body.data;
  const cls = a.label === 'REAL' ? 'real' : 'fake';
  verdict.className = 'verdict ' + cls;
  verdict.textContent = (a.label === 'REAL' ? '✅ ' : '🚨 ') + a.label;

  const sourceLabel = a.explanation_source === 'remote'
    ? 'Dynamic AI reasoning (Hugging Face)'
    : 'Offline fallback reasoning';
  const box = document.createElement('div');
  box.className = 'reasoning ' + cls;
  const src = document.createElement('p');
  src.className = 'source';
  src.textContent = sourceLabel;
  box.appendChild(src);
  box.appendChild(document.createTextNode(a.explanation_text));
  reasoning.appendChild(box);
});
</script>
</body>
</html>
`
